package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/domain/usecase/validation"
)

// Transfer debits one account and credits another in a single transaction.
// Both rows are locked in ascending id order before the balance check.
func (s *Service) Transfer(ctx context.Context, cmd usecase.TransferCommand) (*usecase.TransferResult, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	creditKind, ok := cmd.Kind.Counterpart()
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be used for a transfer", errs.ErrInvalidRequest, cmd.Kind)
	}

	var result *usecase.TransferResult
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		r, err := s.transfer(txCtx, cmd, creditKind)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		s.metrics.Record(opTransfer, outcomeOf(err))
		s.logFailure("Point transfer rejected", err, map[string]any{
			"from":       cmd.From,
			"to":         cmd.To,
			"amount":     cmd.Amount,
			"related_id": cmd.RelatedID,
		})
		return nil, err
	}

	s.metrics.Record(opTransfer, coreport.OutcomeSuccess)
	s.logger.Info("Points transferred", map[string]any{
		"from":         cmd.From,
		"to":           cmd.To,
		"amount":       cmd.Amount,
		"kind":         string(cmd.Kind),
		"related_id":   cmd.RelatedID,
		"from_balance": result.Debit.BalanceAfter,
		"to_balance":   result.Credit.BalanceAfter,
	})
	return result, nil
}

// transfer runs inside an open transaction
func (s *Service) transfer(ctx context.Context, cmd usecase.TransferCommand, creditKind entity.EntryKind) (*usecase.TransferResult, error) {
	accounts := s.uow.Accounts(ctx)

	first, second := cmd.From, cmd.To
	if first > second {
		first, second = second, first
	}
	locked := make(map[uint64]*entity.Account, 2)
	for _, id := range []uint64{first, second} {
		account, err := accounts.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = account
	}

	from := locked[cmd.From]
	if !from.CanDebit(cmd.Amount) {
		return nil, errs.NewInsufficientFundsError(from.ID, cmd.Amount, from.PointBalance)
	}

	fromBalance, err := accounts.ApplyDelta(ctx, cmd.From, -cmd.Amount)
	if err != nil {
		return nil, err
	}
	toBalance, err := accounts.ApplyDelta(ctx, cmd.To, cmd.Amount)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	debit, err := entity.NewLedgerEntry(cmd.From, -cmd.Amount, cmd.Kind, cmd.RelatedID, cmd.Description, fromBalance, now)
	if err != nil {
		return nil, err
	}
	credit, err := entity.NewLedgerEntry(cmd.To, cmd.Amount, creditKind, cmd.RelatedID, cmd.Description, toBalance, now)
	if err != nil {
		return nil, err
	}

	ledger := s.uow.Ledger(ctx)
	if err := ledger.Append(ctx, debit); err != nil {
		return nil, err
	}
	if err := ledger.Append(ctx, credit); err != nil {
		return nil, err
	}

	return &usecase.TransferResult{Debit: debit, Credit: credit}, nil
}

// Credit adds points to one account. Inside an enclosing transaction it joins it.
func (s *Service) Credit(ctx context.Context, cmd usecase.CreditCommand) (*entity.LedgerEntry, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	if !cmd.Kind.IsCreditKind() {
		return nil, fmt.Errorf("%w: %s cannot be used for a credit", errs.ErrInvalidRequest, cmd.Kind)
	}

	var entry *entity.LedgerEntry
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		e, err := s.credit(txCtx, cmd)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		s.metrics.Record(opCredit, outcomeOf(err))
		s.logFailure("Point credit failed", err, map[string]any{
			"account_id": cmd.AccountID,
			"amount":     cmd.Amount,
			"kind":       string(cmd.Kind),
			"related_id": cmd.RelatedID,
		})
		return nil, err
	}

	s.metrics.Record(opCredit, coreport.OutcomeSuccess)
	s.logger.Info("Points credited", map[string]any{
		"account_id": cmd.AccountID,
		"amount":     cmd.Amount,
		"kind":       string(cmd.Kind),
		"related_id": cmd.RelatedID,
		"balance":    entry.BalanceAfter,
	})
	return entry, nil
}

// credit runs inside an open transaction
func (s *Service) credit(ctx context.Context, cmd usecase.CreditCommand) (*entity.LedgerEntry, error) {
	accounts := s.uow.Accounts(ctx)
	if _, err := accounts.GetForUpdate(ctx, cmd.AccountID); err != nil {
		return nil, err
	}

	balance, err := accounts.ApplyDelta(ctx, cmd.AccountID, cmd.Amount)
	if err != nil {
		return nil, err
	}

	entry, err := entity.NewLedgerEntry(cmd.AccountID, cmd.Amount, cmd.Kind, cmd.RelatedID, cmd.Description, balance, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if err := s.uow.Ledger(ctx).Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// outcomeOf classifies an error for metrics
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return coreport.OutcomeSuccess
	case errs.IsInsufficientFundsError(err), errs.IsPreconditionError(err), errs.IsNotFoundError(err):
		return coreport.OutcomeRejected
	default:
		return coreport.OutcomeError
	}
}
