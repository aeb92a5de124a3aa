package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

// CreateDelivery creates the forward job of an accepted borrow request.
// Only the borrower may request it and each borrow gets one forward job.
func (s *Service) CreateDelivery(ctx context.Context, requesterID uint64, cmd usecase.CreateDeliveryCommand) (*usecase.CreateDeliveryResult, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	code, err := entity.GenerateVerificationCode(s.entropy)
	if err != nil {
		return nil, err
	}

	var job *entity.DeliveryJob
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		borrow, err := s.uow.BorrowRequests(txCtx).GetByID(txCtx, cmd.BorrowRequestID)
		if err != nil {
			return err
		}
		if borrow.BorrowerID != requesterID {
			return errs.ErrForbidden
		}

		deliveries := s.uow.Deliveries(txCtx)
		if _, err := deliveries.FindByBorrowRequest(txCtx, borrow.ID, false); err == nil {
			return errs.NewPreconditionError("borrow request %d already has a delivery", borrow.ID)
		} else if !errors.Is(err, errs.ErrDeliveryNotFound) {
			return err
		}

		job, err = entity.NewDeliveryJob(borrow, cmd.PickupAddress, cmd.DeliveryAddress, s.settings.FeePaise, code, s.timeProvider.Now())
		if err != nil {
			return err
		}
		return deliveries.Create(txCtx, job)
	})
	if err != nil {
		s.metrics.Record(opCreate, outcomeOf(err))
		s.logFailure("Delivery creation rejected", err, map[string]any{
			"borrow_request_id": cmd.BorrowRequestID,
			"requester_id":      requesterID,
		})
		return nil, err
	}

	s.metrics.Record(opCreate, coreport.OutcomeSuccess)
	s.logger.Info("Delivery job created", map[string]any{
		"job_id":            job.ID,
		"borrow_request_id": job.BorrowRequestID,
		"fee_paise":         job.FeePaise,
	})
	s.announce(ctx, job)

	return &usecase.CreateDeliveryResult{Job: job, VerificationCode: code}, nil
}

// CreateReturn creates the return trip for a delivered forward job. The trip
// reuses the original agent when known and carries no payment gate.
func (s *Service) CreateReturn(ctx context.Context, requesterID, forwardJobID uint64) (*usecase.CreateDeliveryResult, error) {
	code, err := entity.GenerateVerificationCode(s.entropy)
	if err != nil {
		return nil, err
	}

	var job *entity.DeliveryJob
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		deliveries := s.uow.Deliveries(txCtx)

		forward, err := deliveries.GetForUpdate(txCtx, forwardJobID)
		if err != nil {
			return err
		}
		if forward.BorrowerID != requesterID {
			return errs.ErrForbidden
		}
		if _, err := deliveries.FindByBorrowRequest(txCtx, forward.BorrowRequestID, true); err == nil {
			return errs.NewPreconditionError("borrow request %d already has a return delivery", forward.BorrowRequestID)
		} else if !errors.Is(err, errs.ErrDeliveryNotFound) {
			return err
		}

		job, err = entity.NewReturnJob(forward, code, s.timeProvider.Now())
		if err != nil {
			return err
		}
		return deliveries.Create(txCtx, job)
	})
	if err != nil {
		s.metrics.Record(opReturn, outcomeOf(err))
		s.logFailure("Return delivery rejected", err, map[string]any{
			"forward_job_id": forwardJobID,
			"requester_id":   requesterID,
		})
		return nil, err
	}

	s.metrics.Record(opReturn, coreport.OutcomeSuccess)
	s.logger.Info("Return delivery created", map[string]any{
		"job_id":            job.ID,
		"forward_job_id":    forwardJobID,
		"borrow_request_id": job.BorrowRequestID,
		"preassigned":       job.AgentID != nil,
	})

	relatedID := entity.RelatedIDOf(job.ID)
	notifications := []entity.Notification{
		{
			UserID:    job.BorrowerID,
			Kind:      entity.NotificationReturnScheduled,
			Title:     "Return Scheduled",
			Message:   "Your book return has been scheduled.",
			RelatedID: relatedID,
		},
		{
			UserID:    job.OwnerID,
			Kind:      entity.NotificationReturnScheduled,
			Title:     "Book Coming Back",
			Message:   "Your book is being returned to you.",
			RelatedID: relatedID,
		},
	}
	if job.AgentID != nil {
		notifications = append(notifications, entity.Notification{
			UserID:    *job.AgentID,
			Kind:      entity.NotificationDeliveryAssigned,
			Title:     "Return Delivery Assigned",
			Message:   fmt.Sprintf("You have been assigned the return trip for delivery %d.", forwardJobID),
			RelatedID: relatedID,
		})
		s.notify(ctx, notifications...)
	} else {
		s.notify(ctx, notifications...)
		s.announce(ctx, job)
	}

	return &usecase.CreateDeliveryResult{Job: job, VerificationCode: code}, nil
}
