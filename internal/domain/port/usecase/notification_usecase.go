package usecase

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// NotificationUseCase exposes the pull-based notification feed
type NotificationUseCase interface {
	// List returns the user's most recent notifications
	List(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error)
}
