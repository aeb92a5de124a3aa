package dto

import (
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// OpenAccountRequest registers the caller's point account
type OpenAccountRequest struct {
	Name string `json:"name" binding:"max=120"`
}

// AccountResponse represents an account and its cached balance
type AccountResponse struct {
	UserID       uint64 `json:"userId"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"`
	PointBalance int64  `json:"pointBalance"`
}

// LedgerEntryResponse represents one ledger row
type LedgerEntryResponse struct {
	ID           uint64    `json:"id"`
	Amount       int64     `json:"amount"`
	Kind         string    `json:"kind"`
	RelatedID    string    `json:"relatedId"`
	Description  string    `json:"description,omitempty"`
	BalanceAfter int64     `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LedgerPageResponse wraps a page of entries
type LedgerPageResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// ReconcileResponse compares the cached balance with the ledger sum
type ReconcileResponse struct {
	UserID        uint64 `json:"userId"`
	CachedBalance int64  `json:"cachedBalance"`
	LedgerBalance int64  `json:"ledgerBalance"`
	EntryCount    int64  `json:"entryCount"`
	Balanced      bool   `json:"balanced"`
}

// AcceptBorrowResponse reports an accepted borrow and the points moved
type AcceptBorrowResponse struct {
	BorrowRequestID uint64 `json:"borrowRequestId"`
	Status          string `json:"status"`
	PointsCharged   int64  `json:"pointsCharged"`
	BorrowerBalance int64  `json:"borrowerBalance"`
	OwnerBalance    int64  `json:"ownerBalance"`
}

// ToAccountResponse maps an account
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		UserID:       a.ID,
		Name:         a.Name,
		Role:         string(a.Role),
		PointBalance: a.PointBalance,
	}
}

// ToLedgerEntryResponse maps a ledger entry
func ToLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           e.ID,
		Amount:       e.Amount,
		Kind:         string(e.Kind),
		RelatedID:    e.RelatedID,
		Description:  e.Description,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

// ToAcceptBorrowResponse maps an accepted borrow
func ToAcceptBorrowResponse(r *usecase.AcceptBorrowResult) AcceptBorrowResponse {
	resp := AcceptBorrowResponse{
		BorrowRequestID: r.Request.ID,
		Status:          string(r.Request.Status),
	}
	if r.Transfer != nil {
		resp.PointsCharged = -r.Transfer.Debit.Amount
		resp.BorrowerBalance = r.Transfer.Debit.BalanceAfter
		resp.OwnerBalance = r.Transfer.Credit.BalanceAfter
	}
	return resp
}
