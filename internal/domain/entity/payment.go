package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state shared by payment intents and delivery jobs
type PaymentStatus string

// Payment states
const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PaymentSubject identifies what a payment intent pays for
type PaymentSubject string

// Payment subjects
const (
	PaymentSubjectDelivery PaymentSubject = "DELIVERY"
	PaymentSubjectPoints   PaymentSubject = "POINTS"
)

// DefaultCurrency is the only currency the gateway account settles in
const DefaultCurrency = "INR"

// PaymentIntent tracks one gateway order from creation to settlement
type PaymentIntent struct {
	ID               uint64
	Subject          PaymentSubject
	SubjectID        string
	PayerID          uint64
	AmountPaise      int64
	Currency         string
	Points           int64
	Receipt          string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           PaymentStatus
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	SettledAt        *time.Time
}

// NewPaymentIntent creates a pending intent; the amount must already be derived server-side
func NewPaymentIntent(subject PaymentSubject, subjectID string, payerID uint64, amountPaise, points int64, receipt string, now time.Time) (*PaymentIntent, error) {
	if payerID == 0 || subjectID == "" || receipt == "" {
		return nil, errs.ErrInvalidRequest
	}
	if amountPaise <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	switch subject {
	case PaymentSubjectDelivery:
	case PaymentSubjectPoints:
		if points <= 0 {
			return nil, errs.ErrInvalidAmount
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment subject %q", errs.ErrInvalidRequest, subject)
	}

	return &PaymentIntent{
		Subject:     subject,
		SubjectID:   subjectID,
		PayerID:     payerID,
		AmountPaise: amountPaise,
		Currency:    DefaultCurrency,
		Points:      points,
		Receipt:     receipt,
		Status:      PaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsSettled reports whether the intent reached a terminal state
func (p *PaymentIntent) IsSettled() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}

// PointPackage is a purchasable bundle of points
type PointPackage struct {
	ID       string
	Name     string
	Points   int64
	Bonus    int64
	PriceINR decimal.Decimal
}

// TotalPoints is the number of points credited on settlement
func (p PointPackage) TotalPoints() int64 {
	return p.Points + p.Bonus
}

// AmountPaise converts the rupee price to the gateway's minor unit
func (p PointPackage) AmountPaise() int64 {
	return RupeesToPaise(p.PriceINR)
}

// RupeesToPaise converts a rupee amount to paise, rounding half away from zero
func RupeesToPaise(rupees decimal.Decimal) int64 {
	return rupees.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

var pointPackages = []PointPackage{
	{ID: "basic", Name: "Basic", Points: 100, Bonus: 0, PriceINR: decimal.NewFromInt(49)},
	{ID: "popular", Name: "Popular", Points: 250, Bonus: 25, PriceINR: decimal.NewFromInt(99)},
	{ID: "value", Name: "Best Value", Points: 500, Bonus: 75, PriceINR: decimal.NewFromInt(179)},
	{ID: "premium", Name: "Premium", Points: 1000, Bonus: 200, PriceINR: decimal.NewFromInt(299)},
}

// PointPackages returns the purchasable catalog
func PointPackages() []PointPackage {
	out := make([]PointPackage, len(pointPackages))
	copy(out, pointPackages)
	return out
}

// FindPointPackage looks a package up by id
func FindPointPackage(id string) (PointPackage, bool) {
	for _, p := range pointPackages {
		if p.ID == id {
			return p, true
		}
	}
	return PointPackage{}, false
}
