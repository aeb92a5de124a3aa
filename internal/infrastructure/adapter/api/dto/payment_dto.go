package dto

import (
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// CreateOrderRequest asks for a gateway order. Kind selects which id applies.
type CreateOrderRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=delivery points"`
	DeliveryID uint64 `json:"deliveryId"`
	PackageID  string `json:"packageId"`
}

// VerifyPaymentRequest is the checkout widget's confirmation
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// OrderResponse carries what the checkout widget needs to open the order
type OrderResponse struct {
	IntentID    uint64 `json:"intentId"`
	OrderID     string `json:"orderId"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	KeyID       string `json:"keyId"`
	Points      int64  `json:"points,omitempty"`
}

// PaymentResponse represents a settled or failed payment intent
type PaymentResponse struct {
	IntentID         uint64     `json:"intentId"`
	Subject          string     `json:"subject"`
	SubjectID        string     `json:"subjectId"`
	OrderID          string     `json:"orderId"`
	PaymentID        string     `json:"paymentId,omitempty"`
	Status           string     `json:"status"`
	AmountPaise      int64      `json:"amount"`
	Points           int64      `json:"points,omitempty"`
	SettledAt        *time.Time `json:"settledAt,omitempty"`
	AlreadyCompleted bool       `json:"alreadyCompleted"`
}

// PackageResponse is one purchasable point package
type PackageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Points      int64  `json:"points"`
	Bonus       int64  `json:"bonus"`
	TotalPoints int64  `json:"totalPoints"`
	PriceINR    string `json:"price"`
	AmountPaise int64  `json:"amount"`
}

// WebhookResponse acknowledges a gateway callback
type WebhookResponse struct {
	Received  bool   `json:"received"`
	Event     string `json:"event,omitempty"`
	Handled   bool   `json:"handled"`
	Duplicate bool   `json:"duplicate"`
}

// ToOrderResponse maps an opened order
func ToOrderResponse(r *usecase.OrderResult) OrderResponse {
	return OrderResponse{
		IntentID:    r.Intent.ID,
		OrderID:     r.Intent.GatewayOrderID,
		AmountPaise: r.Intent.AmountPaise,
		Currency:    r.Intent.Currency,
		Receipt:     r.Intent.Receipt,
		KeyID:       r.KeyID,
		Points:      r.Intent.Points,
	}
}

// ToPaymentResponse maps a settlement result
func ToPaymentResponse(r *usecase.SettlementResult) PaymentResponse {
	p := r.Intent
	return PaymentResponse{
		IntentID:         p.ID,
		Subject:          string(p.Subject),
		SubjectID:        p.SubjectID,
		OrderID:          p.GatewayOrderID,
		PaymentID:        p.GatewayPaymentID,
		Status:           string(p.Status),
		AmountPaise:      p.AmountPaise,
		Points:           p.Points,
		SettledAt:        p.SettledAt,
		AlreadyCompleted: r.AlreadyCompleted,
	}
}

// ToPackageResponses maps the package catalog
func ToPackageResponses(pkgs []entity.PointPackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, PackageResponse{
			ID:          p.ID,
			Name:        p.Name,
			Points:      p.Points,
			Bonus:       p.Bonus,
			TotalPoints: p.TotalPoints(),
			PriceINR:    p.PriceINR.StringFixed(2),
			AmountPaise: p.AmountPaise(),
		})
	}
	return out
}
