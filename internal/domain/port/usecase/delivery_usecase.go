package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// CreateDeliveryCommand requests delivery for an accepted borrow
type CreateDeliveryCommand struct {
	BorrowRequestID uint64 `validate:"required"`
	PickupAddress   string `validate:"required,max=500"`
	DeliveryAddress string `validate:"required,max=500"`
}

// CreateDeliveryResult carries the new job and its code, shown once to the borrower
type CreateDeliveryResult struct {
	Job              *entity.DeliveryJob
	VerificationCode string
}

// UpdateStatusCommand asks to move a job to the next status
type UpdateStatusCommand struct {
	Status        entity.DeliveryStatus `validate:"required"`
	TrackingNotes *string               `validate:"omitempty,max=1000"`
}

// StatusResult reports the job after a status request
type StatusResult struct {
	Job     *entity.DeliveryJob
	Changed bool
}

// VerifyCodeResult reports a code verification; AlreadyVerified marks an idempotent repeat
type VerifyCodeResult struct {
	Job             *entity.DeliveryJob
	AlreadyVerified bool
	VerifiedAt      time.Time
}

// DeliveryUseCase defines delivery coordination operations
type DeliveryUseCase interface {
	// CreateDelivery creates the forward job for an accepted borrow request
	CreateDelivery(ctx context.Context, requesterID uint64, cmd CreateDeliveryCommand) (*CreateDeliveryResult, error)

	// CreateReturn creates the return trip of a delivered forward job
	CreateReturn(ctx context.Context, requesterID, forwardJobID uint64) (*CreateDeliveryResult, error)

	// Claim assigns a pending job to the first agent that asks
	Claim(ctx context.Context, jobID, agentID uint64) (*entity.DeliveryJob, error)

	// RevealCode returns the code for the borrower, owner or assigned agent and "" for anyone else
	RevealCode(ctx context.Context, jobID, requesterID uint64) (string, error)

	// VerifyCode checks the pickup code submitted by the assigned agent
	VerifyCode(ctx context.Context, jobID, requesterID uint64, code string) (*VerifyCodeResult, error)

	// AdvanceStatus moves a job one step along its lifecycle
	AdvanceStatus(ctx context.Context, jobID, callerID uint64, cmd UpdateStatusCommand) (*StatusResult, error)

	// GetDelivery returns the current state of a job to a party of it
	GetDelivery(ctx context.Context, jobID uint64, requester entity.Principal) (*entity.DeliveryJob, error)

	// ListAvailable lists jobs open for claiming
	ListAvailable(ctx context.Context, limit int) ([]*entity.DeliveryJob, error)

	// ListAssigned lists jobs held by an agent
	ListAssigned(ctx context.Context, agentID uint64, limit int) ([]*entity.DeliveryJob, error)
}
