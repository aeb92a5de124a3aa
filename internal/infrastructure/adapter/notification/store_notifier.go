package notification

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/persistence"
)

// StoreNotifier writes notifications to the notifications table, where the
// pull-based feed and any outbound dispatcher read them
type StoreNotifier struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ external.Notifier = (*StoreNotifier)(nil)

// NewStoreNotifier creates a notifier backed by the notification repository
func NewStoreNotifier(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *StoreNotifier {
	return &StoreNotifier{uow: uow, timeProvider: timeProvider, logger: logger}
}

// Notify stores one row per notification
func (n *StoreNotifier) Notify(ctx context.Context, notifications ...entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	now := n.timeProvider.Now()
	rows := make([]*entity.Notification, 0, len(notifications))
	for i := range notifications {
		row := notifications[i]
		if row.UserID == 0 {
			continue
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		rows = append(rows, &row)
	}
	if len(rows) == 0 {
		return nil
	}

	if err := n.uow.Notifications(ctx).CreateBatch(ctx, rows); err != nil {
		return err
	}
	n.logger.Debug("Notifications stored", map[string]any{
		"count": len(rows),
		"kind":  string(rows[0].Kind),
	})
	return nil
}

// Withdraw deletes outstanding notifications of kind about relatedID, except keepUserID's
func (n *StoreNotifier) Withdraw(ctx context.Context, kind entity.NotificationKind, relatedID string, keepUserID uint64) error {
	removed, err := n.uow.Notifications(ctx).DeleteByKindAndRelated(ctx, kind, relatedID, keepUserID)
	if err != nil {
		return err
	}
	n.logger.Debug("Notifications withdrawn", map[string]any{
		"kind":       string(kind),
		"related_id": relatedID,
		"removed":    removed,
	})
	return nil
}
