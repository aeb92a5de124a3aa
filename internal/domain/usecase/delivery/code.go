package delivery

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// RevealCode returns the pickup code to a party of the job. Anyone else gets
// an empty string rather than an error so job existence is not leaked by code.
func (s *Service) RevealCode(ctx context.Context, jobID, requesterID uint64) (string, error) {
	job, err := s.uow.Deliveries(ctx).GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	if !job.CanReveal(requesterID) {
		return "", nil
	}
	return job.VerificationCode, nil
}

// VerifyCode accepts the pickup code from the assigned agent once the payment
// is settled. A second submission after success reports AlreadyVerified.
func (s *Service) VerifyCode(ctx context.Context, jobID, requesterID uint64, code string) (*usecase.VerifyCodeResult, error) {
	deliveries := s.uow.Deliveries(ctx)

	job, err := deliveries.GetByID(ctx, jobID)
	if err != nil {
		s.metrics.Record(opVerify, outcomeOf(err))
		return nil, err
	}

	already, err := job.CheckVerification(requesterID, code)
	if err != nil {
		s.metrics.Record(opVerify, outcomeOf(err))
		s.logFailure("Verification code rejected", err, map[string]any{
			"job_id":       jobID,
			"requester_id": requesterID,
		})
		return nil, err
	}
	if already {
		s.metrics.Record(opVerify, coreport.OutcomeReplayed)
		return &usecase.VerifyCodeResult{Job: job, AlreadyVerified: true, VerifiedAt: *job.CodeVerifiedAt}, nil
	}

	now := s.timeProvider.Now()
	marked, err := deliveries.MarkCodeVerified(ctx, jobID, requesterID, now)
	if err != nil {
		s.metrics.Record(opVerify, coreport.OutcomeError)
		return nil, err
	}
	if !marked {
		// a concurrent request changed the job; evaluate again against stored state
		job, err = deliveries.GetByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		already, err = job.CheckVerification(requesterID, code)
		if err != nil {
			s.metrics.Record(opVerify, outcomeOf(err))
			return nil, err
		}
		if !already {
			return nil, errs.ErrInternalServer
		}
		s.metrics.Record(opVerify, coreport.OutcomeReplayed)
		return &usecase.VerifyCodeResult{Job: job, AlreadyVerified: true, VerifiedAt: *job.CodeVerifiedAt}, nil
	}

	job.CodeVerifiedAt = &now
	job.UpdatedAt = now

	s.metrics.Record(opVerify, coreport.OutcomeSuccess)
	s.logger.Info("Verification code accepted", map[string]any{
		"job_id":   jobID,
		"agent_id": requesterID,
	})
	s.notify(ctx, entity.Notification{
		UserID:    job.BorrowerID,
		Kind:      entity.NotificationCodeVerified,
		Title:     "Code Verified",
		Message:   "Your delivery agent verified the pickup code.",
		RelatedID: entity.RelatedIDOf(jobID),
	})

	return &usecase.VerifyCodeResult{Job: job, VerifiedAt: now}, nil
}
