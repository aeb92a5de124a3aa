package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// DeliveryRepository defines operations for delivery jobs.
// Every method that changes a job is a conditional write; the boolean result
// reports whether the condition held.
type DeliveryRepository interface {
	// Create inserts a new job, failing with ErrDuplicate when the borrow already has one of the same direction
	Create(ctx context.Context, job *entity.DeliveryJob) error

	// GetByID retrieves a job without locking
	GetByID(ctx context.Context, id uint64) (*entity.DeliveryJob, error)

	// GetForUpdate retrieves a job and holds its row lock until the transaction ends
	GetForUpdate(ctx context.Context, id uint64) (*entity.DeliveryJob, error)

	// FindByBorrowRequest returns the forward or return job of a borrow request
	FindByBorrowRequest(ctx context.Context, borrowRequestID uint64, isReturn bool) (*entity.DeliveryJob, error)

	// ListAvailable lists pending, unassigned jobs, oldest first
	ListAvailable(ctx context.Context, limit int) ([]*entity.DeliveryJob, error)

	// ListByAgent lists the jobs assigned to an agent, newest first
	ListByAgent(ctx context.Context, agentID uint64, limit int) ([]*entity.DeliveryJob, error)

	// AssignIfPending sets agent and ASSIGNED only while the job is PENDING with no agent
	AssignIfPending(ctx context.Context, id, agentID uint64, now time.Time) (bool, error)

	// MarkCodeVerified sets codeVerifiedAt only while it is unset, the payment is
	// completed and agentID holds the job
	MarkCodeVerified(ctx context.Context, id, agentID uint64, at time.Time) (bool, error)

	// SaveTransition persists status, single-set timestamps and notes only while the stored status equals from
	SaveTransition(ctx context.Context, job *entity.DeliveryJob, from entity.DeliveryStatus) (bool, error)

	// UpdateTrackingNotes overwrites the free-form tracking notes
	UpdateTrackingNotes(ctx context.Context, id uint64, notes string, now time.Time) error

	// SetPaymentReference records the gateway order handed to the payer and reopens a failed gate
	SetPaymentReference(ctx context.Context, id uint64, reference string, now time.Time) error

	// MarkPaymentCompleted opens the payment gate once
	MarkPaymentCompleted(ctx context.Context, id uint64, reference string, now time.Time) (bool, error)

	// MarkPaymentFailed records a failed payment unless it already completed
	MarkPaymentFailed(ctx context.Context, id uint64, now time.Time) (bool, error)
}
