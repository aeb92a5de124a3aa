package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEntry(t *testing.T) {
	entry, err := NewLedgerEntry(2, -20, EntryKindBorrow, "1", "Borrowed book 101", 80, fixedNow)
	require.NoError(t, err)
	assert.True(t, entry.IsDebit())
	assert.Equal(t, int64(80), entry.BalanceAfter)

	_, err = NewLedgerEntry(2, 0, EntryKindBorrow, "1", "", 80, fixedNow)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = NewLedgerEntry(2, -20, EntryKind("GIFT"), "1", "", 80, fixedNow)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = NewLedgerEntry(2, -35, EntryKindBorrow, "1", "", -15, fixedNow)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
}

func TestEntryKind(t *testing.T) {
	lend, ok := EntryKindBorrow.Counterpart()
	assert.True(t, ok)
	assert.Equal(t, EntryKindLend, lend)

	_, ok = EntryKindPurchase.Counterpart()
	assert.False(t, ok)

	assert.True(t, EntryKindPurchase.IsCreditKind())
	assert.False(t, EntryKindBorrow.IsCreditKind())
}

func TestAccount(t *testing.T) {
	account, err := NewAccount(5, "Reader", "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, account.Role)
	assert.Zero(t, account.PointBalance)

	account.PointBalance = 20
	assert.True(t, account.CanDebit(20))
	assert.False(t, account.CanDebit(21))
	assert.False(t, account.CanDebit(0))

	_, err = NewAccount(0, "x", RoleUser, fixedNow)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = NewAccount(5, "x", Role("ROOT"), fixedNow)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	assert.True(t, Reconciliation{CachedBalance: 80, LedgerBalance: 80}.Balanced())
	assert.False(t, Reconciliation{CachedBalance: 80, LedgerBalance: 100}.Balanced())
}
