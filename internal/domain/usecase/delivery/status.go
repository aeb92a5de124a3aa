package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

var statusMessages = map[entity.DeliveryStatus]string{
	entity.DeliveryStatusPickedUp:  "Your book has been picked up.",
	entity.DeliveryStatusInTransit: "Your book is on its way.",
	entity.DeliveryStatusDelivered: "Your book has been delivered.",
	entity.DeliveryStatusCompleted: "Your delivery is complete.",
}

// AdvanceStatus moves the job one step forward for its assigned agent.
// The job row is locked while the guards run.
func (s *Service) AdvanceStatus(ctx context.Context, jobID, callerID uint64, cmd usecase.UpdateStatusCommand) (*usecase.StatusResult, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	var (
		job *entity.DeliveryJob
		tr  entity.Transition
	)
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		deliveries := s.uow.Deliveries(txCtx)

		var err error
		job, err = deliveries.GetForUpdate(txCtx, jobID)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		tr, err = job.Advance(callerID, cmd.Status, now)
		if err != nil {
			return err
		}
		if cmd.TrackingNotes != nil {
			job.TrackingNotes = strings.TrimSpace(*cmd.TrackingNotes)
		}

		if !tr.Changed {
			if cmd.TrackingNotes == nil {
				return nil
			}
			return deliveries.UpdateTrackingNotes(txCtx, jobID, job.TrackingNotes, now)
		}

		saved, err := deliveries.SaveTransition(txCtx, job, tr.From)
		if err != nil {
			return err
		}
		if !saved {
			return errs.NewPreconditionError("delivery %d changed status concurrently", jobID)
		}
		return nil
	})
	if err != nil {
		s.metrics.Record(opAdvance, outcomeOf(err))
		s.logFailure("Status change rejected", err, map[string]any{
			"job_id":    jobID,
			"caller_id": callerID,
			"target":    string(cmd.Status),
		})
		return nil, err
	}

	if !tr.Changed {
		s.metrics.Record(opAdvance, coreport.OutcomeReplayed)
		return &usecase.StatusResult{Job: job}, nil
	}

	s.metrics.Record(opAdvance, coreport.OutcomeSuccess)
	s.logger.Info("Delivery status changed", map[string]any{
		"job_id": jobID,
		"from":   string(tr.From),
		"to":     string(tr.To),
	})

	message, ok := statusMessages[tr.To]
	if !ok {
		message = fmt.Sprintf("Delivery status changed to %s.", tr.To)
	}
	s.notify(ctx, entity.Notification{
		UserID:    job.BorrowerID,
		Kind:      entity.NotificationDeliveryUpdate,
		Title:     "Delivery Update",
		Message:   message,
		RelatedID: entity.RelatedIDOf(jobID),
	})

	return &usecase.StatusResult{Job: job, Changed: true}, nil
}
