package ledger

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// Operation names reported to metrics
const (
	opTransfer     = "ledger_transfer"
	opCredit       = "ledger_credit"
	opAcceptBorrow = "borrow_accept"
)

// Settings holds ledger amounts that come from configuration
type Settings struct {
	// InitialPoints is credited once when an account is opened
	InitialPoints int64
	// BorrowCost is charged when a borrow request carries no cost of its own
	BorrowCost int64
}

// DefaultSettings returns the marketplace defaults
func DefaultSettings() Settings {
	return Settings{
		InitialPoints: 100,
		BorrowCost:    20,
	}
}

// Service implements the point ledger
type Service struct {
	uow          persistence.UnitOfWork
	notifier     external.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	settings     Settings
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	notifier external.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	settings Settings,
) *Service {
	return &Service{
		uow:          uow,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		settings:     settings,
	}
}

// notify hands notifications to the notifier and only logs failures
func (s *Service) notify(ctx context.Context, notifications ...entity.Notification) {
	if s.notifier == nil || len(notifications) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, notifications...); err != nil {
		s.logger.Warn("Failed to create ledger notifications", map[string]any{
			"count": len(notifications),
			"error": err.Error(),
		})
	}
}

// logFailure logs a failed ledger operation with the error's own fields when it has them
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
