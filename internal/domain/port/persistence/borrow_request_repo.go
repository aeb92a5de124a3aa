package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// BorrowRequestRepository exposes the borrow context owned by the request CRUD layer
type BorrowRequestRepository interface {
	// GetByID retrieves a borrow request
	GetByID(ctx context.Context, id uint64) (*entity.BorrowRequest, error)

	// AcceptIfPending moves a PENDING request to ACCEPTED; false means it was not PENDING
	AcceptIfPending(ctx context.Context, id uint64, now time.Time) (bool, error)
}
