package delivery

import (
	"context"
	"errors"
	"io"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// Operation names reported to metrics
const (
	opCreate  = "delivery_create"
	opClaim   = "delivery_claim"
	opVerify  = "delivery_verify_code"
	opAdvance = "delivery_advance"
	opReturn  = "delivery_return"
)

// Settings holds delivery values that come from configuration
type Settings struct {
	// FeePaise is charged for every forward delivery
	FeePaise int64
}

// Service coordinates delivery jobs: claiming, code verification and status transitions
type Service struct {
	uow          persistence.UnitOfWork
	notifier     external.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	entropy      io.Reader
	settings     Settings
}

var _ usecase.DeliveryUseCase = (*Service)(nil)

// NewService creates a new delivery service. A nil entropy source uses crypto/rand.
func NewService(
	uow persistence.UnitOfWork,
	notifier external.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	entropy io.Reader,
	settings Settings,
) *Service {
	return &Service{
		uow:          uow,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		entropy:      entropy,
		settings:     settings,
	}
}

// GetDelivery returns a job to its borrower, owner or agent, to admins, and to
// delivery agents while the job is still open
func (s *Service) GetDelivery(ctx context.Context, jobID uint64, requester entity.Principal) (*entity.DeliveryJob, error) {
	job, err := s.uow.Deliveries(ctx).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	switch {
	case requester.Role == entity.RoleAdmin:
	case job.CanReveal(requester.UserID):
	case requester.Role.CanDeliver() && job.IsClaimable():
	default:
		return nil, errs.ErrForbidden
	}
	return job, nil
}

// ListAvailable lists jobs open for claiming
func (s *Service) ListAvailable(ctx context.Context, limit int) ([]*entity.DeliveryJob, error) {
	return s.uow.Deliveries(ctx).ListAvailable(ctx, clampLimit(limit))
}

// ListAssigned lists jobs held by an agent
func (s *Service) ListAssigned(ctx context.Context, agentID uint64, limit int) ([]*entity.DeliveryJob, error) {
	if agentID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	return s.uow.Deliveries(ctx).ListByAgent(ctx, agentID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

// notify hands notifications to the notifier and only logs failures
func (s *Service) notify(ctx context.Context, notifications ...entity.Notification) {
	if s.notifier == nil || len(notifications) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, notifications...); err != nil {
		s.logger.Warn("Failed to create delivery notifications", map[string]any{
			"count": len(notifications),
			"error": err.Error(),
		})
	}
}

// announce tells every delivery agent that a job is open
func (s *Service) announce(ctx context.Context, job *entity.DeliveryJob) {
	agentIDs, err := s.uow.Accounts(ctx).ListIDsByRole(ctx, entity.RoleDeliveryAgent)
	if err != nil {
		s.logger.Warn("Failed to list delivery agents", map[string]any{
			"job_id": job.ID,
			"error":  err.Error(),
		})
		return
	}

	notifications := make([]entity.Notification, 0, len(agentIDs))
	for _, id := range agentIDs {
		notifications = append(notifications, entity.Notification{
			UserID:    id,
			Kind:      entity.NotificationDeliveryAvailable,
			Title:     "New Delivery Available",
			Message:   "A new delivery job is waiting for an agent.",
			RelatedID: entity.RelatedIDOf(job.ID),
		})
	}
	s.notify(ctx, notifications...)
}

func (s *Service) logFailure(message string, err error, fields map[string]any) {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		for k, v := range lf.LogFields() {
			fields[k] = v
		}
	}
	fields["error"] = err.Error()
	s.logger.Warn(message, fields)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return coreport.OutcomeSuccess
	case errors.Is(err, errs.ErrAlreadyAssigned),
		errs.IsPreconditionError(err),
		errors.Is(err, errs.ErrInvalidCode),
		errors.Is(err, errs.ErrPaymentNotComplete),
		errors.Is(err, errs.ErrForbidden),
		errs.IsNotFoundError(err):
		return coreport.OutcomeRejected
	default:
		return coreport.OutcomeError
	}
}
