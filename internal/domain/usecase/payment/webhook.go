package payment

import (
	"context"
	"encoding/json"
	"fmt"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// Gateway events acted upon
const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
	EventPaymentFailed   = "payment.failed"
)

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

func (e *webhookEnvelope) orderID() string {
	if id := e.Payload.Payment.Entity.OrderID; id != "" {
		return id
	}
	return e.Payload.Order.Entity.ID
}

// HandleWebhook verifies the raw callback body and applies it. Unknown orders
// and events are acknowledged without change so the gateway stops retrying;
// storage failures are returned so it retries.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature, eventID string) (*usecase.WebhookResult, error) {
	if !VerifyPayload(s.settings.WebhookSecret, payload, signature) {
		s.metrics.Record(opWebhook, coreport.OutcomeRejected)
		s.logger.Warn("Webhook signature mismatch", map[string]any{
			"event_id": eventID,
			"size":     len(payload),
		})
		return nil, errs.ErrInvalidSignature
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.metrics.Record(opWebhook, coreport.OutcomeRejected)
		return nil, fmt.Errorf("%w: malformed webhook body", errs.ErrInvalidRequest)
	}
	result := &usecase.WebhookResult{Event: envelope.Event}

	if s.guard != nil && eventID != "" {
		duplicate, err := s.guard.CheckAndMark(ctx, eventID)
		if err != nil {
			s.logger.Warn("Webhook deduplication unavailable", map[string]any{
				"event_id": eventID,
				"error":    err.Error(),
			})
		} else if duplicate {
			s.metrics.Record(opWebhook, coreport.OutcomeReplayed)
			result.Duplicate = true
			return result, nil
		}
	}

	err := s.applyEvent(ctx, &envelope, result)
	if err != nil {
		if s.guard != nil && eventID != "" {
			if ferr := s.guard.Forget(ctx, eventID); ferr != nil {
				s.logger.Warn("Failed to release webhook event", map[string]any{
					"event_id": eventID,
					"error":    ferr.Error(),
				})
			}
		}
		s.metrics.Record(opWebhook, coreport.OutcomeError)
		return nil, err
	}

	if result.Handled {
		s.metrics.Record(opWebhook, coreport.OutcomeSuccess)
	} else {
		s.metrics.Record(opWebhook, coreport.OutcomeRejected)
	}
	return result, nil
}

func (s *Service) applyEvent(ctx context.Context, envelope *webhookEnvelope, result *usecase.WebhookResult) error {
	orderID := envelope.orderID()
	fields := map[string]any{
		"event":    envelope.Event,
		"order_id": orderID,
	}

	switch envelope.Event {
	case EventPaymentCaptured, EventOrderPaid:
		settlement, err := s.settle(ctx, orderID, envelope.Payload.Payment.Entity.ID)
		switch {
		case err == nil:
			result.Handled = true
			result.Settlement = settlement
			return nil
		case errs.IsNotFoundError(err), errs.IsPreconditionError(err):
			fields["error"] = err.Error()
			s.logger.Warn("Webhook settlement skipped", fields)
			return nil
		default:
			return err
		}

	case EventPaymentFailed:
		intent, err := s.uow.Payments(ctx).GetByGatewayOrderID(ctx, orderID)
		if err != nil {
			if errs.IsNotFoundError(err) {
				s.logger.Warn("Webhook for unknown order", fields)
				return nil
			}
			return err
		}
		reason := envelope.Payload.Payment.Entity.ErrorDescription
		if reason == "" {
			reason = "payment failed at gateway"
		}
		if err := s.failIntent(ctx, intent, reason); err != nil {
			return err
		}
		result.Handled = true
		return nil
	}

	s.logger.Debug("Ignoring webhook event", fields)
	return nil
}
