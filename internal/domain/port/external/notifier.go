package external

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// Notifier creates user notifications on a best-effort basis.
// Callers log failures and never abort a committed operation because of them.
type Notifier interface {
	// Notify creates one notification per entry
	Notify(ctx context.Context, notifications ...entity.Notification) error

	// Withdraw removes outstanding notifications of a kind about relatedID, except those for keepUserID
	Withdraw(ctx context.Context, kind entity.NotificationKind, relatedID string, keepUserID uint64) error
}
