package model

import (
	"time"
)

// BorrowRequest represents the borrow requests the core accepts
type BorrowRequest struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	BookID     uint64    `gorm:"not null;index"`
	OwnerID    uint64    `gorm:"not null;index"`
	BorrowerID uint64    `gorm:"not null;index"`
	Status     string    `gorm:"not null;size:20"`
	PointsCost int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for BorrowRequest
func (BorrowRequest) TableName() string {
	return "borrow_requests"
}
