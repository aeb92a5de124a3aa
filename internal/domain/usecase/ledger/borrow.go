package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
)

// AcceptBorrow accepts a pending borrow request and moves its cost from the
// borrower to the owner. Acceptance and transfer commit together, so a borrower
// short of points leaves the request PENDING.
func (s *Service) AcceptBorrow(ctx context.Context, ownerID, borrowRequestID uint64) (*usecase.AcceptBorrowResult, error) {
	if ownerID == 0 || borrowRequestID == 0 {
		return nil, errs.ErrInvalidRequest
	}

	var result *usecase.AcceptBorrowResult
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		borrows := s.uow.BorrowRequests(txCtx)

		req, err := borrows.GetByID(txCtx, borrowRequestID)
		if err != nil {
			return err
		}
		if req.OwnerID != ownerID {
			return errs.ErrForbidden
		}
		if req.Status != entity.BorrowStatusPending {
			return errs.NewPreconditionError("borrow request %d is %s", req.ID, req.Status)
		}

		accepted, err := borrows.AcceptIfPending(txCtx, req.ID, s.timeProvider.Now())
		if err != nil {
			return err
		}
		if !accepted {
			return errs.NewPreconditionError("borrow request %d is no longer pending", req.ID)
		}
		req.Status = entity.BorrowStatusAccepted

		cost := req.PointsCost
		if cost <= 0 {
			cost = s.settings.BorrowCost
		}
		transfer, err := s.transfer(txCtx, usecase.TransferCommand{
			From:        req.BorrowerID,
			To:          req.OwnerID,
			Amount:      cost,
			Kind:        entity.EntryKindBorrow,
			RelatedID:   entity.RelatedIDOf(req.ID),
			Description: fmt.Sprintf("Borrow of book %d", req.BookID),
		}, entity.EntryKindLend)
		if err != nil {
			return err
		}

		result = &usecase.AcceptBorrowResult{Request: req, Transfer: transfer}
		return nil
	})
	if err != nil {
		s.metrics.Record(opAcceptBorrow, outcomeOf(err))
		s.logFailure("Borrow acceptance rejected", err, map[string]any{
			"borrow_request_id": borrowRequestID,
			"owner_id":          ownerID,
		})
		return nil, err
	}

	s.metrics.Record(opAcceptBorrow, coreport.OutcomeSuccess)
	s.metrics.Record(opTransfer, coreport.OutcomeSuccess)

	req, debit, credit := result.Request, result.Transfer.Debit, result.Transfer.Credit
	relatedID := entity.RelatedIDOf(req.ID)
	s.notify(ctx,
		entity.Notification{
			UserID:    req.BorrowerID,
			Kind:      entity.NotificationPointsDebited,
			Title:     "Points Deducted",
			Message:   fmt.Sprintf("%d points deducted for borrowing a book. New balance: %d", -debit.Amount, debit.BalanceAfter),
			RelatedID: relatedID,
		},
		entity.Notification{
			UserID:    req.OwnerID,
			Kind:      entity.NotificationPointsCredited,
			Title:     "Points Earned",
			Message:   fmt.Sprintf("You earned %d points for lending a book. New balance: %d", credit.Amount, credit.BalanceAfter),
			RelatedID: relatedID,
		},
	)

	s.logger.Info("Borrow request accepted", map[string]any{
		"borrow_request_id": req.ID,
		"borrower_id":       req.BorrowerID,
		"owner_id":          req.OwnerID,
		"points":            credit.Amount,
	})
	return result, nil
}
