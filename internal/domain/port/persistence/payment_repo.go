package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// PaymentRepository defines operations for payment intents
type PaymentRepository interface {
	// Create inserts a pending intent
	Create(ctx context.Context, intent *entity.PaymentIntent) error

	// GetByID retrieves an intent
	GetByID(ctx context.Context, id uint64) (*entity.PaymentIntent, error)

	// GetByGatewayOrderID retrieves the intent behind a gateway order
	GetByGatewayOrderID(ctx context.Context, orderID string) (*entity.PaymentIntent, error)

	// AttachGatewayOrder stores the gateway order id of a pending intent
	AttachGatewayOrder(ctx context.Context, id uint64, orderID string, now time.Time) error

	// Complete moves a PENDING intent to COMPLETED; false means it was not PENDING
	Complete(ctx context.Context, id uint64, paymentID string, now time.Time) (bool, error)

	// Fail moves a PENDING intent to FAILED; false means it was not PENDING
	Fail(ctx context.Context, id uint64, reason string, now time.Time) (bool, error)
}
