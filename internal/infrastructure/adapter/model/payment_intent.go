package model

import (
	"time"
)

// PaymentIntent represents the database model for gateway payment intents.
// GatewayOrderID stays NULL until the gateway order exists.
type PaymentIntent struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	Subject          string    `gorm:"not null;size:20"`
	SubjectID        string    `gorm:"not null;size:64;index"`
	PayerID          uint64    `gorm:"not null;index"`
	AmountPaise      int64     `gorm:"not null"`
	Currency         string    `gorm:"not null;size:3"`
	Points           int64     `gorm:"not null;default:0"`
	Receipt          string    `gorm:"not null;size:64"`
	GatewayOrderID   *string   `gorm:"size:64;uniqueIndex"`
	GatewayPaymentID string    `gorm:"size:64"`
	Status           string    `gorm:"not null;size:20;index"`
	FailureReason    string    `gorm:"size:255"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
	SettledAt        *time.Time
}

// TableName specifies the table name for PaymentIntent
func (PaymentIntent) TableName() string {
	return "payment_intents"
}
