package usecase

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// Order kinds accepted by CreateOrder
const (
	OrderKindDelivery = "delivery"
	OrderKindPoints   = "points"
)

// CreateOrderCommand is a tagged variant: Kind selects which of the other fields applies
type CreateOrderCommand struct {
	Kind       string `validate:"required,oneof=delivery points"`
	DeliveryID uint64 `validate:"required_if=Kind delivery"`
	PackageID  string `validate:"required_if=Kind points"`
}

// OrderResult is returned to the checkout widget
type OrderResult struct {
	Intent *entity.PaymentIntent
	KeyID  string
}

// ConfirmPaymentCommand is the client-side confirmation returned by the checkout widget
type ConfirmPaymentCommand struct {
	OrderID   string `validate:"required,max=64"`
	PaymentID string `validate:"required,max=64"`
	Signature string `validate:"required,hexadecimal"`
}

// SettlementResult reports a settlement; AlreadyCompleted marks an idempotent replay
type SettlementResult struct {
	Intent           *entity.PaymentIntent
	AlreadyCompleted bool
}

// WebhookResult reports how a gateway callback was handled
type WebhookResult struct {
	Event      string
	Handled    bool
	Duplicate  bool
	Settlement *SettlementResult
}

// PaymentUseCase defines payment settlement operations
type PaymentUseCase interface {
	// CreateOrder opens a gateway order for a delivery fee or a point package
	CreateOrder(ctx context.Context, payerID uint64, cmd CreateOrderCommand) (*OrderResult, error)

	// ConfirmPayment settles an order from the client confirmation path
	ConfirmPayment(ctx context.Context, payerID uint64, cmd ConfirmPaymentCommand) (*SettlementResult, error)

	// HandleWebhook verifies and applies a raw gateway callback
	HandleWebhook(ctx context.Context, payload []byte, signature, eventID string) (*WebhookResult, error)

	// Packages lists purchasable point packages
	Packages() []entity.PointPackage
}
