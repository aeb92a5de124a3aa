package model

import (
	"time"
)

// Notification represents a stored user notification
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index:idx_notifications_user_created,priority:1"`
	Kind      string    `gorm:"not null;size:30;index:idx_notifications_kind_related,priority:1"`
	Title     string    `gorm:"not null;size:120"`
	Message   string    `gorm:"type:text"`
	RelatedID string    `gorm:"size:64;index:idx_notifications_kind_related,priority:2"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index:idx_notifications_user_created,priority:2"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
