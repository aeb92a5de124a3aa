package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/port/external"
	"github.com/google/uuid"
)

// SandboxGateway opens orders locally. It is used when no gateway key id is
// configured; the checkout widget cannot complete against it, but orders can
// be settled with signatures computed from the configured key secret.
type SandboxGateway struct{}

var _ external.PaymentGateway = SandboxGateway{}

// CreateOrder returns an order with a random id
func (SandboxGateway) CreateOrder(ctx context.Context, req external.OrderRequest) (*external.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &external.Order{
		ID:          "order_sbx_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		AmountPaise: req.AmountPaise,
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Status:      "created",
	}, nil
}

// KeyID identifies the sandbox to clients
func (SandboxGateway) KeyID() string {
	return "rzp_sandbox"
}

// Select returns the live client when a key id is configured and the sandbox
// otherwise. A key id without its secret is a configuration error.
func Select(keyID, keySecret string, timeout time.Duration, opts ...Option) (external.PaymentGateway, error) {
	if strings.TrimSpace(keyID) == "" {
		return SandboxGateway{}, nil
	}
	client, err := NewRazorpayClient(keyID, keySecret, timeout, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
