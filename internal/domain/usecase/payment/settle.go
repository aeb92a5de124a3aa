package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

// ConfirmPayment settles an order from the checkout confirmation. A signature
// mismatch marks a pending intent FAILED.
func (s *Service) ConfirmPayment(ctx context.Context, payerID uint64, cmd usecase.ConfirmPaymentCommand) (*usecase.SettlementResult, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	intent, err := s.uow.Payments(ctx).GetByGatewayOrderID(ctx, cmd.OrderID)
	if err != nil {
		s.metrics.Record(opSettle, outcomeOf(err))
		return nil, err
	}
	if intent.PayerID != payerID {
		s.metrics.Record(opSettle, coreport.OutcomeRejected)
		return nil, errs.ErrForbidden
	}

	if !VerifyOrderPayment(s.settings.KeySecret, cmd.OrderID, cmd.PaymentID, cmd.Signature) {
		s.metrics.Record(opSettle, coreport.OutcomeRejected)
		s.logger.Warn("Payment signature mismatch", map[string]any{
			"intent_id":  intent.ID,
			"order_id":   cmd.OrderID,
			"payment_id": cmd.PaymentID,
		})
		if err := s.failIntent(ctx, intent, "signature verification failed"); err != nil {
			s.logger.Error("Failed to mark payment as failed", map[string]any{
				"intent_id": intent.ID,
				"error":     err.Error(),
			})
		}
		return nil, errs.ErrInvalidSignature
	}

	return s.settle(ctx, cmd.OrderID, cmd.PaymentID)
}

// settle completes the intent behind orderID and applies its effect once.
// The intent state change and its effect commit in one transaction, and the
// work is not abandoned when the caller goes away.
func (s *Service) settle(ctx context.Context, orderID, paymentID string) (*usecase.SettlementResult, error) {
	ctx = context.WithoutCancel(ctx)

	var result *usecase.SettlementResult
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		payments := s.uow.Payments(txCtx)

		intent, err := payments.GetByGatewayOrderID(txCtx, orderID)
		if err != nil {
			return err
		}
		if replay, err := settledState(intent); replay != nil || err != nil {
			result = replay
			return err
		}

		now := s.timeProvider.Now()
		completed, err := payments.Complete(txCtx, intent.ID, paymentID, now)
		if err != nil {
			return err
		}
		if !completed {
			intent, err = payments.GetByID(txCtx, intent.ID)
			if err != nil {
				return err
			}
			replay, err := settledState(intent)
			if replay == nil && err == nil {
				err = fmt.Errorf("%w: intent %d did not settle", errs.ErrInternalServer, intent.ID)
			}
			result = replay
			return err
		}

		intent.Status = entity.PaymentStatusCompleted
		intent.GatewayPaymentID = paymentID
		intent.SettledAt = &now
		intent.UpdatedAt = now

		if err := s.applyEffect(txCtx, intent, now); err != nil {
			return err
		}
		result = &usecase.SettlementResult{Intent: intent}
		return nil
	})
	if err != nil {
		s.metrics.Record(opSettle, outcomeOf(err))
		s.logger.Error("Payment settlement failed", map[string]any{
			"order_id":   orderID,
			"payment_id": paymentID,
			"error":      err.Error(),
		})
		return nil, err
	}

	intent := result.Intent
	if result.AlreadyCompleted {
		s.metrics.Record(opSettle, coreport.OutcomeReplayed)
		s.logger.Info("Payment already settled", map[string]any{
			"intent_id": intent.ID,
			"order_id":  orderID,
		})
		return result, nil
	}

	s.metrics.Record(opSettle, coreport.OutcomeSuccess)
	s.logger.Info("Payment settled", map[string]any{
		"intent_id":    intent.ID,
		"order_id":     orderID,
		"payment_id":   paymentID,
		"subject":      string(intent.Subject),
		"amount_paise": intent.AmountPaise,
	})

	message := "Your delivery payment was received."
	if intent.Subject == entity.PaymentSubjectPoints {
		message = fmt.Sprintf("%d points were added to your account.", intent.Points)
	}
	s.notify(ctx, entity.Notification{
		UserID:    intent.PayerID,
		Kind:      entity.NotificationPaymentReceived,
		Title:     "Payment Received",
		Message:   message,
		RelatedID: intent.SubjectID,
	})
	return result, nil
}

// settledState returns a replay result for a completed intent and an error
// for a failed one; both nil means the intent is still pending
func settledState(intent *entity.PaymentIntent) (*usecase.SettlementResult, error) {
	switch intent.Status {
	case entity.PaymentStatusCompleted:
		return &usecase.SettlementResult{Intent: intent, AlreadyCompleted: true}, nil
	case entity.PaymentStatusFailed:
		return nil, errs.NewPreconditionError("payment %d already failed", intent.ID)
	}
	return nil, nil
}

// applyEffect opens the delivery gate or credits purchased points
func (s *Service) applyEffect(ctx context.Context, intent *entity.PaymentIntent, now time.Time) error {
	switch intent.Subject {
	case entity.PaymentSubjectDelivery:
		jobID, err := strconv.ParseUint(intent.SubjectID, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: bad delivery reference %q", errs.ErrInternalServer, intent.SubjectID)
		}
		_, err = s.uow.Deliveries(ctx).MarkPaymentCompleted(ctx, jobID, intent.GatewayOrderID, now)
		return err

	case entity.PaymentSubjectPoints:
		_, err := s.ledger.Credit(ctx, usecase.CreditCommand{
			AccountID:   intent.PayerID,
			Amount:      intent.Points,
			Kind:        entity.EntryKindPurchase,
			RelatedID:   fmt.Sprintf("payment:%d", intent.ID),
			Description: fmt.Sprintf("Purchased %s package", intent.SubjectID),
		})
		return err
	}
	return fmt.Errorf("%w: unknown payment subject %q", errs.ErrInternalServer, intent.Subject)
}

// failIntent marks a pending intent FAILED and closes the delivery gate it guarded
func (s *Service) failIntent(ctx context.Context, intent *entity.PaymentIntent, reason string) error {
	var failed bool
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		now := s.timeProvider.Now()

		var err error
		failed, err = s.uow.Payments(txCtx).Fail(txCtx, intent.ID, reason, now)
		if err != nil || !failed {
			return err
		}
		if intent.Subject != entity.PaymentSubjectDelivery {
			return nil
		}
		jobID, err := strconv.ParseUint(intent.SubjectID, 10, 64)
		if err != nil {
			return err
		}
		_, err = s.uow.Deliveries(txCtx).MarkPaymentFailed(txCtx, jobID, now)
		return err
	})
	if err != nil {
		s.metrics.Record(opFail, coreport.OutcomeError)
		return err
	}
	if failed {
		s.metrics.Record(opFail, coreport.OutcomeSuccess)
		s.logger.Warn("Payment marked as failed", map[string]any{
			"intent_id": intent.ID,
			"order_id":  intent.GatewayOrderID,
			"reason":    reason,
		})
	}
	return nil
}
