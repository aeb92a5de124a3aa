package persistence

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// AccountRepository defines operations for point accounts
type AccountRepository interface {
	// Create inserts a new account, failing with ErrDuplicate if it exists
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account without locking
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetForUpdate retrieves an account and holds its row lock until the transaction ends
	GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error)

	// ApplyDelta adds delta to the balance in one guarded write that never lets
	// the balance go negative, and returns the new balance
	ApplyDelta(ctx context.Context, id uint64, delta int64) (int64, error)

	// ListIDsByRole lists account ids holding the given role
	ListIDsByRole(ctx context.Context, role entity.Role) ([]uint64, error)
}
