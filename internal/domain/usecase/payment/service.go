package payment

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// Operation names reported to metrics
const (
	opCreateOrder = "payment_create_order"
	opSettle      = "payment_settle"
	opFail        = "payment_fail"
	opWebhook     = "payment_webhook"
)

// Settings holds gateway secrets and limits
type Settings struct {
	// KeySecret signs checkout confirmations
	KeySecret string
	// WebhookSecret signs gateway callbacks
	WebhookSecret string
	// GatewayTimeout bounds each outbound gateway call
	GatewayTimeout coreport.Duration
}

// Service settles gateway payments against delivery jobs and point purchases
type Service struct {
	uow          persistence.UnitOfWork
	gateway      external.PaymentGateway
	guard        external.EventGuard
	ledger       usecase.LedgerUseCase
	notifier     external.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	settings     Settings
}

var _ usecase.PaymentUseCase = (*Service)(nil)

// NewService creates a new payment service. A nil guard disables webhook deduplication.
func NewService(
	uow persistence.UnitOfWork,
	gateway external.PaymentGateway,
	guard external.EventGuard,
	ledger usecase.LedgerUseCase,
	notifier external.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	settings Settings,
) *Service {
	if settings.GatewayTimeout <= 0 {
		settings.GatewayTimeout = 10 * coreport.Second
	}
	return &Service{
		uow:          uow,
		gateway:      gateway,
		guard:        guard,
		ledger:       ledger,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		settings:     settings,
	}
}

// Packages lists purchasable point packages
func (s *Service) Packages() []entity.PointPackage {
	return entity.PointPackages()
}

func (s *Service) notify(ctx context.Context, notifications ...entity.Notification) {
	if s.notifier == nil || len(notifications) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, notifications...); err != nil {
		s.logger.Warn("Failed to create payment notifications", map[string]any{
			"count": len(notifications),
			"error": err.Error(),
		})
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return coreport.OutcomeSuccess
	case errors.Is(err, errs.ErrInvalidSignature),
		errors.Is(err, errs.ErrForbidden),
		errs.IsPreconditionError(err),
		errs.IsNotFoundError(err):
		return coreport.OutcomeRejected
	default:
		return coreport.OutcomeError
	}
}
