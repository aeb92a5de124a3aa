package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
)

// Role is the marketplace role carried by an authenticated caller
type Role string

// Roles issued by the session layer
const (
	RoleUser          Role = "USER"
	RoleDeliveryAgent Role = "DELIVERY_AGENT"
	RoleAdmin         Role = "ADMIN"
)

// IsValid reports whether the role is one the marketplace knows
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleDeliveryAgent, RoleAdmin:
		return true
	}
	return false
}

// CanDeliver reports whether the role may claim and run delivery jobs
func (r Role) CanDeliver() bool {
	return r == RoleDeliveryAgent || r == RoleAdmin
}

// Principal is the authenticated (userId, role) pair handed over by the session layer
type Principal struct {
	UserID uint64
	Role   Role
}

// Account is the point-holding view of a marketplace user.
// PointBalance is a cache of the sum of the account's ledger entries and is
// only ever changed by the ledger engine.
type Account struct {
	ID           uint64
	Name         string
	Role         Role
	PointBalance int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount creates an empty account; points arrive through ledger credits only
func NewAccount(id uint64, name string, role Role, now time.Time) (*Account, error) {
	if id == 0 {
		return nil, errs.ErrInvalidRequest
	}
	if role == "" {
		role = RoleUser
	}
	if !role.IsValid() {
		return nil, errs.ErrInvalidRequest
	}

	return &Account{
		ID:        id,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDebit checks if the account holds enough points for a debit
func (a *Account) CanDebit(amount int64) bool {
	return amount > 0 && a.PointBalance >= amount
}

// Reconciliation compares an account's cached balance with its ledger
type Reconciliation struct {
	AccountID     uint64
	CachedBalance int64
	LedgerBalance int64
	EntryCount    int64
}

// Balanced reports whether the conservation invariant holds
func (r Reconciliation) Balanced() bool {
	return r.CachedBalance == r.LedgerBalance
}
