package model

import (
	"time"
)

// LedgerEntry represents one signed point movement. Rows are never updated.
type LedgerEntry struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID    uint64    `gorm:"not null;uniqueIndex:idx_ledger_account_kind_related,priority:1;index:idx_ledger_account_created,priority:1"`
	Amount       int64     `gorm:"not null"`
	Kind         string    `gorm:"not null;size:20;uniqueIndex:idx_ledger_account_kind_related,priority:2"`
	RelatedID    string    `gorm:"not null;size:64;uniqueIndex:idx_ledger_account_kind_related,priority:3"`
	Description  string    `gorm:"size:255"`
	BalanceAfter int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index:idx_ledger_account_created,priority:2"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
