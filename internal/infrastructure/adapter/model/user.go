package model

import (
	"time"
)

// User represents the database model for point accounts
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement:false"`
	Name         string    `gorm:"size:120"`
	Role         string    `gorm:"not null;size:20;default:USER;index"`
	PointBalance int64     `gorm:"not null;default:0;check:chk_users_point_balance,point_balance >= 0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
