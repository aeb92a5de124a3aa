package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

// CreateOrder opens a gateway order. The amount always comes from the stored
// delivery fee or the package catalog, never from the caller.
func (s *Service) CreateOrder(ctx context.Context, payerID uint64, cmd usecase.CreateOrderCommand) (*usecase.OrderResult, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	if payerID == 0 {
		return nil, errs.ErrUnauthorized
	}

	intent, err := s.newIntent(ctx, payerID, cmd)
	if err != nil {
		s.metrics.Record(opCreateOrder, outcomeOf(err))
		s.logger.Warn("Order request rejected", map[string]any{
			"payer_id": payerID,
			"kind":     cmd.Kind,
			"error":    err.Error(),
		})
		return nil, err
	}

	if err := s.uow.Payments(ctx).Create(ctx, intent); err != nil {
		s.metrics.Record(opCreateOrder, coreport.OutcomeError)
		return nil, err
	}

	order, err := s.openGatewayOrder(ctx, intent)
	if err != nil {
		s.metrics.Record(opCreateOrder, coreport.OutcomeError)
		s.logger.Error("Gateway order creation failed", map[string]any{
			"intent_id": intent.ID,
			"receipt":   intent.Receipt,
			"error":     err.Error(),
		})
		return nil, errs.NewPaymentError(intent.ID, "", "gateway order creation failed", fmt.Errorf("%w: %v", errs.ErrGateway, err))
	}

	now := s.timeProvider.Now()
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.uow.Payments(txCtx).AttachGatewayOrder(txCtx, intent.ID, order.ID, now); err != nil {
			return err
		}
		if intent.Subject != entity.PaymentSubjectDelivery {
			return nil
		}
		jobID, err := strconv.ParseUint(intent.SubjectID, 10, 64)
		if err != nil {
			return err
		}
		return s.uow.Deliveries(txCtx).SetPaymentReference(txCtx, jobID, order.ID, now)
	})
	if err != nil {
		s.metrics.Record(opCreateOrder, coreport.OutcomeError)
		return nil, err
	}
	intent.GatewayOrderID = order.ID
	intent.UpdatedAt = now

	s.metrics.Record(opCreateOrder, coreport.OutcomeSuccess)
	s.logger.Info("Payment order created", map[string]any{
		"intent_id":    intent.ID,
		"order_id":     order.ID,
		"subject":      string(intent.Subject),
		"amount_paise": intent.AmountPaise,
	})

	return &usecase.OrderResult{Intent: intent, KeyID: s.gateway.KeyID()}, nil
}

func (s *Service) newIntent(ctx context.Context, payerID uint64, cmd usecase.CreateOrderCommand) (*entity.PaymentIntent, error) {
	now := s.timeProvider.Now()

	switch cmd.Kind {
	case usecase.OrderKindDelivery:
		job, err := s.uow.Deliveries(ctx).GetByID(ctx, cmd.DeliveryID)
		if err != nil {
			return nil, err
		}
		if job.BorrowerID != payerID {
			return nil, errs.ErrForbidden
		}
		if job.PaymentPolicy != entity.PaymentPolicyPrepaid {
			return nil, errs.NewPreconditionError("delivery %d does not take payment", job.ID)
		}
		if job.IsPaid() {
			return nil, errs.NewPreconditionError("delivery %d is already paid", job.ID)
		}
		receipt := fmt.Sprintf("delivery_%d_%d", job.ID, now.Unix())
		return entity.NewPaymentIntent(entity.PaymentSubjectDelivery, strconv.FormatUint(job.ID, 10), payerID, job.FeePaise, 0, receipt, now)

	case usecase.OrderKindPoints:
		pkg, ok := entity.FindPointPackage(cmd.PackageID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown package %q", errs.ErrInvalidRequest, cmd.PackageID)
		}
		receipt := fmt.Sprintf("points_%d_%d", payerID, now.Unix())
		return entity.NewPaymentIntent(entity.PaymentSubjectPoints, pkg.ID, payerID, pkg.AmountPaise(), pkg.TotalPoints(), receipt, now)
	}

	return nil, fmt.Errorf("%w: unknown order kind %q", errs.ErrInvalidRequest, cmd.Kind)
}

func (s *Service) openGatewayOrder(ctx context.Context, intent *entity.PaymentIntent) (*external.Order, error) {
	callCtx, cancel := s.timeProvider.WithTimeout(ctx, s.settings.GatewayTimeout)
	defer cancel()

	return s.gateway.CreateOrder(callCtx, external.OrderRequest{
		AmountPaise: intent.AmountPaise,
		Currency:    intent.Currency,
		Receipt:     intent.Receipt,
		Notes: map[string]string{
			"intent_id":  strconv.FormatUint(intent.ID, 10),
			"subject":    string(intent.Subject),
			"subject_id": intent.SubjectID,
		},
	})
}
