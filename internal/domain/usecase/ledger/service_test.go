package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/model"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/notification"
	timeprovider "github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/time"
)

func setupService(t *testing.T, settings Settings) (*Service, *database.TestDB) {
	t.Helper()

	db := database.NewTestDB(t)
	clock := timeprovider.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	log := logger.NewNoopLogger()
	notifier := notification.NewStoreNotifier(db.UoW, clock, log)
	return NewService(db.UoW, notifier, clock, log, metrics.NewCollector(nil), settings), db
}

func openAccounts(t *testing.T, s *Service, ids ...uint64) {
	t.Helper()
	for _, id := range ids {
		_, err := s.OpenAccount(context.Background(), usecase.OpenAccountCommand{UserID: id})
		require.NoError(t, err)
	}
}

func assertBalanced(t *testing.T, s *Service, ids ...uint64) int64 {
	t.Helper()
	var total int64
	for _, id := range ids {
		rec, err := s.Reconcile(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, rec.Balanced(), "account %d cached %d ledger %d", id, rec.CachedBalance, rec.LedgerBalance)
		total += rec.CachedBalance
	}
	return total
}

func TestService_OpenAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("should credit the welcome bonus exactly once", func(t *testing.T) {
		s, _ := setupService(t, DefaultSettings())

		first, err := s.OpenAccount(ctx, usecase.OpenAccountCommand{UserID: 1, Name: "Asha"})
		require.NoError(t, err)
		assert.Equal(t, int64(100), first.PointBalance)
		assert.Equal(t, entity.RoleUser, first.Role)

		again, err := s.OpenAccount(ctx, usecase.OpenAccountCommand{UserID: 1, Name: "Asha"})
		require.NoError(t, err)
		assert.Equal(t, int64(100), again.PointBalance)

		entries, err := s.ListEntries(ctx, 1, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.EntryKindInitial, entries[0].Kind)
		assert.Equal(t, "registration", entries[0].RelatedID)
	})

	t.Run("should open agent accounts without a bonus when none is configured", func(t *testing.T) {
		s, _ := setupService(t, Settings{BorrowCost: 20})

		account, err := s.OpenAccount(ctx, usecase.OpenAccountCommand{UserID: 9, Role: entity.RoleDeliveryAgent})
		require.NoError(t, err)
		assert.Zero(t, account.PointBalance)
		assert.Equal(t, entity.RoleDeliveryAgent, account.Role)
	})

	t.Run("should reject invalid commands", func(t *testing.T) {
		s, _ := setupService(t, DefaultSettings())

		_, err := s.OpenAccount(ctx, usecase.OpenAccountCommand{})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		_, err = s.OpenAccount(ctx, usecase.OpenAccountCommand{UserID: 1, Role: "LIBRARIAN"})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("should move points and write paired entries", func(t *testing.T) {
		s, _ := setupService(t, DefaultSettings())
		openAccounts(t, s, 1, 2)

		res, err := s.Transfer(ctx, usecase.TransferCommand{
			From: 2, To: 1, Amount: 30, Kind: entity.EntryKindBorrow, RelatedID: "17",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(-30), res.Debit.Amount)
		assert.Equal(t, int64(70), res.Debit.BalanceAfter)
		assert.Equal(t, entity.EntryKindBorrow, res.Debit.Kind)
		assert.Equal(t, int64(30), res.Credit.Amount)
		assert.Equal(t, int64(130), res.Credit.BalanceAfter)
		assert.Equal(t, entity.EntryKindLend, res.Credit.Kind)

		assert.Equal(t, int64(200), assertBalanced(t, s, 1, 2))
	})

	t.Run("should report the shortfall and leave balances untouched", func(t *testing.T) {
		s, _ := setupService(t, Settings{InitialPoints: 20, BorrowCost: 20})
		openAccounts(t, s, 1, 2)

		_, err := s.Transfer(ctx, usecase.TransferCommand{
			From: 2, To: 1, Amount: 35, Kind: entity.EntryKindBorrow, RelatedID: "17",
		})
		require.Error(t, err)

		var insufficient *errs.InsufficientFundsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, int64(15), insufficient.Shortfall())
		assert.Equal(t, "insufficient points: need 15 more points", err.Error())

		account, err := s.GetAccount(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(20), account.PointBalance)
		assert.Equal(t, int64(40), assertBalanced(t, s, 1, 2))
	})

	t.Run("should reject malformed transfers", func(t *testing.T) {
		s, _ := setupService(t, DefaultSettings())
		openAccounts(t, s, 1, 2)

		testCases := []struct {
			name string
			cmd  usecase.TransferCommand
			want error
		}{
			{"self transfer", usecase.TransferCommand{From: 1, To: 1, Amount: 5, Kind: entity.EntryKindBorrow, RelatedID: "x"}, errs.ErrInvalidRequest},
			{"zero amount", usecase.TransferCommand{From: 1, To: 2, Kind: entity.EntryKindBorrow, RelatedID: "x"}, errs.ErrInvalidRequest},
			{"credit-only kind", usecase.TransferCommand{From: 1, To: 2, Amount: 5, Kind: entity.EntryKindPurchase, RelatedID: "x"}, errs.ErrInvalidRequest},
			{"missing related id", usecase.TransferCommand{From: 1, To: 2, Amount: 5, Kind: entity.EntryKindBorrow}, errs.ErrInvalidRequest},
			{"unknown account", usecase.TransferCommand{From: 1, To: 99, Amount: 5, Kind: entity.EntryKindBorrow, RelatedID: "x"}, errs.ErrAccountNotFound},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.Transfer(ctx, tc.cmd)
				assert.ErrorIs(t, err, tc.want)
			})
		}
		assert.Equal(t, int64(200), assertBalanced(t, s, 1, 2))
	})

	t.Run("should conserve points under concurrent transfers", func(t *testing.T) {
		s, db := setupService(t, DefaultSettings())
		openAccounts(t, s, 1, 2, 3)

		// each account sends at most 70 of its 100 points, so every transfer must land
		var g errgroup.Group
		var applied atomic.Int64
		pairs := [][2]uint64{{1, 2}, {2, 3}, {3, 1}, {2, 1}, {3, 2}, {1, 3}}
		for round := 0; round < 5; round++ {
			round := round
			for i, p := range pairs {
				i, p := i, p
				g.Go(func() error {
					_, err := s.Transfer(ctx, usecase.TransferCommand{
						From: p[0], To: p[1], Amount: 7, Kind: entity.EntryKindBorrow,
						RelatedID: fmt.Sprintf("race-%d-%d", round, i),
					})
					if err != nil {
						return err
					}
					applied.Add(1)
					return nil
				})
			}
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int64(30), applied.Load())
		assert.Equal(t, int64(300), assertBalanced(t, s, 1, 2, 3))

		var entries int64
		require.NoError(t, db.DB.Model(&model.LedgerEntry{}).Count(&entries).Error)
		assert.Equal(t, int64(3+2*30), entries)
	})

	t.Run("should reject a second posting for the same related id and kind", func(t *testing.T) {
		s, _ := setupService(t, DefaultSettings())
		openAccounts(t, s, 1, 2)

		cmd := usecase.TransferCommand{From: 1, To: 2, Amount: 5, Kind: entity.EntryKindBorrow, RelatedID: "9"}
		_, err := s.Transfer(ctx, cmd)
		require.NoError(t, err)

		_, err = s.Transfer(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrDuplicate)
		assert.Equal(t, int64(200), assertBalanced(t, s, 1, 2))
	})
}

func TestService_Credit(t *testing.T) {
	ctx := context.Background()
	s, _ := setupService(t, DefaultSettings())
	openAccounts(t, s, 1)

	entry, err := s.Credit(ctx, usecase.CreditCommand{
		AccountID: 1, Amount: 275, Kind: entity.EntryKindPurchase, RelatedID: "order_1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(375), entry.BalanceAfter)

	_, err = s.Credit(ctx, usecase.CreditCommand{AccountID: 1, Amount: 5, Kind: entity.EntryKindBorrow, RelatedID: "x"})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = s.Credit(ctx, usecase.CreditCommand{AccountID: 42, Amount: 5, Kind: entity.EntryKindRefund, RelatedID: "x"})
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	assertBalanced(t, s, 1)
}

func TestService_AcceptBorrow(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, settings Settings, cost int64) (*Service, *database.TestDB) {
		s, db := setupService(t, settings)
		openAccounts(t, s, 1, 2)
		db.CreateBorrowRequest(t, model.BorrowRequest{
			ID: 5, BookID: 101, OwnerID: 1, BorrowerID: 2, Status: string(entity.BorrowStatusPending), PointsCost: cost,
		})
		return s, db
	}

	t.Run("should accept and charge the configured cost", func(t *testing.T) {
		s, db := setup(t, DefaultSettings(), 0)

		res, err := s.AcceptBorrow(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, entity.BorrowStatusAccepted, res.Request.Status)
		assert.Equal(t, int64(80), res.Transfer.Debit.BalanceAfter)
		assert.Equal(t, int64(120), res.Transfer.Credit.BalanceAfter)
		assert.Equal(t, "5", res.Transfer.Debit.RelatedID)

		var stored model.BorrowRequest
		require.NoError(t, db.DB.First(&stored, 5).Error)
		assert.Equal(t, string(entity.BorrowStatusAccepted), stored.Status)

		var notes int64
		require.NoError(t, db.DB.Model(&model.Notification{}).Where("related_id = ?", "5").Count(&notes).Error)
		assert.Equal(t, int64(2), notes)

		_, err = s.AcceptBorrow(ctx, 1, 5)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, int64(200), assertBalanced(t, s, 1, 2))
	})

	t.Run("should charge the request's own cost", func(t *testing.T) {
		s, _ := setup(t, DefaultSettings(), 45)

		res, err := s.AcceptBorrow(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(-45), res.Transfer.Debit.Amount)
	})

	t.Run("should accept after the short borrower tops up", func(t *testing.T) {
		s, db := setup(t, Settings{InitialPoints: 15, BorrowCost: 20}, 0)

		countEntries := func() int64 {
			var n int64
			require.NoError(t, db.DB.Model(&model.LedgerEntry{}).Count(&n).Error)
			return n
		}
		before := countEntries()

		_, err := s.AcceptBorrow(ctx, 1, 5)
		require.Error(t, err)
		var insufficient *errs.InsufficientFundsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, int64(5), insufficient.Shortfall())
		assert.Equal(t, before, countEntries())

		var stored model.BorrowRequest
		require.NoError(t, db.DB.First(&stored, 5).Error)
		assert.Equal(t, string(entity.BorrowStatusPending), stored.Status)
		assert.Equal(t, int64(30), assertBalanced(t, s, 1, 2))

		topUp, err := s.Credit(ctx, usecase.CreditCommand{
			AccountID: 2, Amount: 20, Kind: entity.EntryKindPurchase, RelatedID: "order_topup",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(35), topUp.BalanceAfter)
		afterTopUp := countEntries()

		res, err := s.AcceptBorrow(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, entity.BorrowStatusAccepted, res.Request.Status)
		assert.Equal(t, int64(-20), res.Transfer.Debit.Amount)
		assert.Equal(t, int64(15), res.Transfer.Debit.BalanceAfter)
		assert.Equal(t, int64(20), res.Transfer.Credit.Amount)
		assert.Equal(t, int64(35), res.Transfer.Credit.BalanceAfter)
		assert.Equal(t, afterTopUp+2, countEntries())

		borrower, err := s.GetAccount(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(15), borrower.PointBalance)
		owner, err := s.GetAccount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(35), owner.PointBalance)
		assert.Equal(t, int64(50), assertBalanced(t, s, 1, 2))
	})

	t.Run("should only let the owner accept", func(t *testing.T) {
		s, _ := setup(t, DefaultSettings(), 0)

		_, err := s.AcceptBorrow(ctx, 2, 5)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		_, err = s.AcceptBorrow(ctx, 1, 77)
		assert.ErrorIs(t, err, errs.ErrBorrowRequestNotFound)
	})
}
