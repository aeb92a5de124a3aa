package persistence

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// LedgerRepository defines append-only operations for ledger entries
type LedgerRepository interface {
	// Append writes a new entry and fills in its ID
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	// ListByAccount returns an account's entries, newest first
	ListByAccount(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.LedgerEntry, error)

	// SumByAccount returns the sum of the account's entry amounts and the entry count
	SumByAccount(ctx context.Context, accountID uint64) (sum int64, count int64, err error)

	// Exists reports whether an entry of the kind and related id is already recorded for the account
	Exists(ctx context.Context, accountID uint64, kind entity.EntryKind, relatedID string) (bool, error)
}
