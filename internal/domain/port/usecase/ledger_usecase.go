package usecase

import (
	"context"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// OpenAccountCommand registers a user's point account
type OpenAccountCommand struct {
	UserID uint64      `validate:"required"`
	Name   string      `validate:"max=120"`
	Role   entity.Role `validate:"omitempty,oneof=USER DELIVERY_AGENT ADMIN"`
}

// TransferCommand moves points between two accounts
type TransferCommand struct {
	From        uint64           `validate:"required,nefield=To"`
	To          uint64           `validate:"required"`
	Amount      int64            `validate:"gt=0"`
	Kind        entity.EntryKind `validate:"required"`
	RelatedID   string           `validate:"required,max=64"`
	Description string           `validate:"max=255"`
}

// CreditCommand adds points to one account
type CreditCommand struct {
	AccountID   uint64           `validate:"required"`
	Amount      int64            `validate:"gt=0"`
	Kind        entity.EntryKind `validate:"required"`
	RelatedID   string           `validate:"required,max=64"`
	Description string           `validate:"max=255"`
}

// TransferResult holds the paired entries written by a transfer
type TransferResult struct {
	Debit  *entity.LedgerEntry
	Credit *entity.LedgerEntry
}

// AcceptBorrowResult describes an accepted borrow and the points it moved
type AcceptBorrowResult struct {
	Request  *entity.BorrowRequest
	Transfer *TransferResult
}

// LedgerUseCase defines the point ledger operations
type LedgerUseCase interface {
	// OpenAccount creates the account and its welcome credit; repeated calls return the existing account
	OpenAccount(ctx context.Context, cmd OpenAccountCommand) (*entity.Account, error)

	// Transfer debits one account and credits another in one transaction
	Transfer(ctx context.Context, cmd TransferCommand) (*TransferResult, error)

	// Credit adds points to one account
	Credit(ctx context.Context, cmd CreditCommand) (*entity.LedgerEntry, error)

	// AcceptBorrow accepts a pending borrow request and charges the borrower
	AcceptBorrow(ctx context.Context, ownerID, borrowRequestID uint64) (*AcceptBorrowResult, error)

	// GetAccount returns the account with its cached balance
	GetAccount(ctx context.Context, accountID uint64) (*entity.Account, error)

	// ListEntries returns ledger entries, newest first
	ListEntries(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.LedgerEntry, error)

	// Reconcile compares the cached balance with the ledger sum
	Reconcile(ctx context.Context, accountID uint64) (*entity.Reconciliation, error)
}
