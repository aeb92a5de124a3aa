package external

import (
	"context"
)

// OrderRequest asks the gateway to open an order for a server-derived amount
type OrderRequest struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// Order is the gateway's view of an opened order
type Order struct {
	ID          string
	AmountPaise int64
	Currency    string
	Receipt     string
	Status      string
}

// PaymentGateway opens orders with the external payment provider
type PaymentGateway interface {
	// CreateOrder opens an order; implementations honor ctx deadlines
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)

	// KeyID is the public key the checkout widget needs
	KeyID() string
}
