package model

import (
	"time"
)

// DeliveryJob represents the database model for delivery jobs
type DeliveryJob struct {
	ID                  uint64  `gorm:"primaryKey;autoIncrement"`
	BorrowRequestID     uint64  `gorm:"not null;uniqueIndex:idx_delivery_borrow_direction,priority:1"`
	BookID              uint64  `gorm:"not null"`
	OwnerID             uint64  `gorm:"not null;index"`
	BorrowerID          uint64  `gorm:"not null;index"`
	IsReturn            bool    `gorm:"not null;default:false;uniqueIndex:idx_delivery_borrow_direction,priority:2"`
	Status              string  `gorm:"not null;size:20;index"`
	AgentID             *uint64 `gorm:"index"`
	PickupAddress       string  `gorm:"not null;type:text"`
	DeliveryAddress     string  `gorm:"not null;type:text"`
	PaymentPolicy       string  `gorm:"not null;size:20"`
	PaymentStatus       string  `gorm:"not null;size:20"`
	PaymentReference    string  `gorm:"size:64"`
	FeePaise            int64   `gorm:"not null;default:0"`
	VerificationCode    string  `gorm:"not null;size:6"`
	CodeVerifiedAt      *time.Time
	PickupCompletedAt   *time.Time
	DeliveryCompletedAt *time.Time
	TrackingNotes       string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for DeliveryJob
func (DeliveryJob) TableName() string {
	return "delivery_jobs"
}
