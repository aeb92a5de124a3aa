package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
)

// EntryKind classifies a ledger movement
type EntryKind string

// Ledger entry kinds
const (
	EntryKindInitial  EntryKind = "INITIAL"
	EntryKindBorrow   EntryKind = "BORROW"
	EntryKindLend     EntryKind = "LEND"
	EntryKindPurchase EntryKind = "PURCHASE"
	EntryKindRefund   EntryKind = "REFUND"
)

// IsValid checks if the kind is known
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindInitial, EntryKindBorrow, EntryKindLend, EntryKindPurchase, EntryKindRefund:
		return true
	}
	return false
}

// IsCreditKind reports whether the kind may be used for a single-sided credit
func (k EntryKind) IsCreditKind() bool {
	return k == EntryKindInitial || k == EntryKindPurchase || k == EntryKindRefund
}

// Counterpart returns the credit-side kind paired with a debit-side transfer kind
func (k EntryKind) Counterpart() (EntryKind, bool) {
	switch k {
	case EntryKindBorrow:
		return EntryKindLend, true
	}
	return "", false
}

// LedgerEntry is an immutable record of one signed point movement on one account
type LedgerEntry struct {
	ID           uint64
	AccountID    uint64
	Amount       int64
	Kind         EntryKind
	RelatedID    string
	Description  string
	BalanceAfter int64
	CreatedAt    time.Time
}

// NewLedgerEntry validates and builds a ledger entry
func NewLedgerEntry(accountID uint64, amount int64, kind EntryKind, relatedID, description string, balanceAfter int64, now time.Time) (*LedgerEntry, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	if amount == 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", errs.ErrInvalidRequest, kind)
	}
	if balanceAfter < 0 {
		return nil, errs.NewInsufficientFundsError(accountID, -amount, balanceAfter-amount)
	}

	return &LedgerEntry{
		AccountID:    accountID,
		Amount:       amount,
		Kind:         kind,
		RelatedID:    relatedID,
		Description:  description,
		BalanceAfter: balanceAfter,
		CreatedAt:    now,
	}, nil
}

// IsDebit reports whether the entry removed points
func (e *LedgerEntry) IsDebit() bool {
	return e.Amount < 0
}
