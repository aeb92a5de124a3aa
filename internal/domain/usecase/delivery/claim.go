package delivery

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
)

// Claim assigns a pending job to agentID with one conditional write.
// The read after a lost race only shapes the error message.
func (s *Service) Claim(ctx context.Context, jobID, agentID uint64) (*entity.DeliveryJob, error) {
	if jobID == 0 || agentID == 0 {
		return nil, errs.ErrInvalidRequest
	}

	deliveries := s.uow.Deliveries(ctx)
	won, err := deliveries.AssignIfPending(ctx, jobID, agentID, s.timeProvider.Now())
	if err != nil {
		s.metrics.Record(opClaim, coreport.OutcomeError)
		s.logger.Error("Failed to claim delivery job", map[string]any{
			"job_id":   jobID,
			"agent_id": agentID,
			"error":    err.Error(),
		})
		return nil, err
	}

	job, err := deliveries.GetByID(ctx, jobID)
	if err != nil {
		if won {
			return nil, err
		}
		s.metrics.Record(opClaim, outcomeOf(err))
		return nil, err
	}

	if !won {
		if job.IsAssignedTo(agentID) {
			// repeated claim by the winner
			return job, nil
		}
		var current uint64
		if job.AgentID != nil {
			current = *job.AgentID
		}
		claimErr := errs.NewAlreadyAssignedError(jobID, current)
		s.metrics.Record(opClaim, coreport.OutcomeRejected)
		s.logFailure("Delivery claim lost", claimErr, map[string]any{"agent_id": agentID})
		return nil, claimErr
	}

	s.metrics.Record(opClaim, coreport.OutcomeSuccess)
	s.logger.Info("Delivery job claimed", map[string]any{
		"job_id":   jobID,
		"agent_id": agentID,
	})

	relatedID := entity.RelatedIDOf(jobID)
	s.notify(ctx, entity.Notification{
		UserID:    job.BorrowerID,
		Kind:      entity.NotificationDeliveryAssigned,
		Title:     "Delivery Agent Assigned",
		Message:   "A delivery agent has accepted your delivery.",
		RelatedID: relatedID,
	})
	if s.notifier != nil {
		if err := s.notifier.Withdraw(ctx, entity.NotificationDeliveryAvailable, relatedID, agentID); err != nil {
			s.logger.Warn("Failed to withdraw job announcements", map[string]any{
				"job_id": jobID,
				"error":  err.Error(),
			})
		}
	}

	return job, nil
}
