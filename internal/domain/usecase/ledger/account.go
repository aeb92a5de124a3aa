package ledger

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

// registrationRelatedID ties the welcome credit to the account itself
const registrationRelatedID = "registration"

// OpenAccount creates the account and credits the welcome bonus once
func (s *Service) OpenAccount(ctx context.Context, cmd usecase.OpenAccountCommand) (*entity.Account, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	var account *entity.Account
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		accounts := s.uow.Accounts(txCtx)

		existing, err := accounts.GetByID(txCtx, cmd.UserID)
		switch {
		case err == nil:
			account = existing
		case errors.Is(err, errs.ErrAccountNotFound):
			created, err := entity.NewAccount(cmd.UserID, cmd.Name, cmd.Role, s.timeProvider.Now())
			if err != nil {
				return err
			}
			if err := accounts.Create(txCtx, created); err != nil {
				return err
			}
			account = created
		default:
			return err
		}

		if s.settings.InitialPoints <= 0 {
			return nil
		}
		credited, err := s.uow.Ledger(txCtx).Exists(txCtx, account.ID, entity.EntryKindInitial, registrationRelatedID)
		if err != nil || credited {
			return err
		}

		entry, err := s.credit(txCtx, usecase.CreditCommand{
			AccountID:   account.ID,
			Amount:      s.settings.InitialPoints,
			Kind:        entity.EntryKindInitial,
			RelatedID:   registrationRelatedID,
			Description: "Welcome bonus",
		})
		if err != nil {
			return err
		}
		account.PointBalance = entry.BalanceAfter
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to open account", map[string]any{
			"user_id": cmd.UserID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Account opened", map[string]any{
		"user_id": account.ID,
		"role":    string(account.Role),
		"balance": account.PointBalance,
	})
	return account, nil
}

// GetAccount returns the account with its cached balance
func (s *Service) GetAccount(ctx context.Context, accountID uint64) (*entity.Account, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	return s.uow.Accounts(ctx).GetByID(ctx, accountID)
}

// ListEntries returns the account's ledger, newest first
func (s *Service) ListEntries(ctx context.Context, accountID uint64, limit, offset int) ([]*entity.LedgerEntry, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.uow.Ledger(ctx).ListByAccount(ctx, accountID, limit, offset)
}

// Reconcile re-derives the balance from the ledger inside one transaction
func (s *Service) Reconcile(ctx context.Context, accountID uint64) (*entity.Reconciliation, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidRequest
	}

	var rec *entity.Reconciliation
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		account, err := s.uow.Accounts(txCtx).GetForUpdate(txCtx, accountID)
		if err != nil {
			return err
		}
		sum, count, err := s.uow.Ledger(txCtx).SumByAccount(txCtx, accountID)
		if err != nil {
			return err
		}
		rec = &entity.Reconciliation{
			AccountID:     accountID,
			CachedBalance: account.PointBalance,
			LedgerBalance: sum,
			EntryCount:    count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !rec.Balanced() {
		s.logger.Error("Ledger out of balance", map[string]any{
			"account_id":     accountID,
			"cached_balance": rec.CachedBalance,
			"ledger_balance": rec.LedgerBalance,
			"entry_count":    rec.EntryCount,
		})
	}
	return rec, nil
}
