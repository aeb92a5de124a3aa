package persistence

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// NotificationRepository stores notifications for the outbound dispatcher
type NotificationRepository interface {
	// CreateBatch inserts notifications in one statement
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error

	// DeleteByKindAndRelated removes notifications of a kind about relatedID, except those for keepUserID
	DeleteByKindAndRelated(ctx context.Context, kind entity.NotificationKind, relatedID string, keepUserID uint64) (int64, error)

	// ListByUser returns a user's notifications, newest first
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error)
}
