package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Do runs fn inside a transaction, committing on nil and rolling back otherwise.
	// When ctx already carries a transaction, fn joins it.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// Accounts returns an account repository bound to the current transaction
	Accounts(ctx context.Context) AccountRepository

	// Ledger returns a ledger entry repository bound to the current transaction
	Ledger(ctx context.Context) LedgerRepository

	// Deliveries returns a delivery job repository bound to the current transaction
	Deliveries(ctx context.Context) DeliveryRepository

	// Payments returns a payment intent repository bound to the current transaction
	Payments(ctx context.Context) PaymentRepository

	// BorrowRequests returns a borrow request repository bound to the current transaction
	BorrowRequests(ctx context.Context) BorrowRequestRepository

	// Notifications returns a notification repository bound to the current transaction
	Notifications(ctx context.Context) NotificationRepository
}
