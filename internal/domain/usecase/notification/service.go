package notification

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// Service reads the notification feed
type Service struct {
	uow persistence.UnitOfWork
}

var _ usecase.NotificationUseCase = (*Service)(nil)

// NewService creates a new notification service
func NewService(uow persistence.UnitOfWork) *Service {
	return &Service{uow: uow}
}

// List returns the user's most recent notifications
func (s *Service) List(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.uow.Notifications(ctx).ListByUser(ctx, userID, limit)
}
