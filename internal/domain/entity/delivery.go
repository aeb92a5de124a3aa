package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/lending-core/internal/domain/error"
)

// DeliveryStatus is a position in the delivery lifecycle
type DeliveryStatus string

// Delivery states, in lifecycle order
const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryStatusPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusCompleted DeliveryStatus = "COMPLETED"
)

var deliverySequence = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusAssigned,
	DeliveryStatusPickedUp,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusCompleted,
}

// Rank is the position of the status in the lifecycle, or -1 if unknown
func (s DeliveryStatus) Rank() int {
	for i, st := range deliverySequence {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid checks if the status is part of the lifecycle
func (s DeliveryStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Next returns the status that follows s
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	r := s.Rank()
	if r < 0 || r == len(deliverySequence)-1 {
		return "", false
	}
	return deliverySequence[r+1], true
}

// ParseDeliveryStatus parses a status name case-insensitively
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	s := DeliveryStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown delivery status %q", errs.ErrInvalidRequest, value)
	}
	return s, nil
}

// PaymentPolicy states how a job's payment gate is satisfied
type PaymentPolicy string

// Payment policies
const (
	// PaymentPolicyPrepaid jobs wait for a settled gateway payment
	PaymentPolicyPrepaid PaymentPolicy = "PREPAID"
	// PaymentPolicyWaived jobs start with a completed payment and no fee (return trips)
	PaymentPolicyWaived PaymentPolicy = "WAIVED"
)

// DeliveryJob tracks pickup and delivery of one physical book handoff
type DeliveryJob struct {
	ID                  uint64
	BorrowRequestID     uint64
	BookID              uint64
	OwnerID             uint64
	BorrowerID          uint64
	IsReturn            bool
	Status              DeliveryStatus
	AgentID             *uint64
	PickupAddress       string
	DeliveryAddress     string
	PaymentPolicy       PaymentPolicy
	PaymentStatus       PaymentStatus
	PaymentReference    string
	FeePaise            int64
	VerificationCode    string
	CodeVerifiedAt      *time.Time
	PickupCompletedAt   *time.Time
	DeliveryCompletedAt *time.Time
	TrackingNotes       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewDeliveryJob creates the forward delivery for an accepted borrow request
func NewDeliveryJob(borrow *BorrowRequest, pickupAddress, deliveryAddress string, feePaise int64, code string, now time.Time) (*DeliveryJob, error) {
	if borrow == nil {
		return nil, errs.ErrBorrowRequestNotFound
	}
	if borrow.Status != BorrowStatusAccepted {
		return nil, errs.NewPreconditionError("borrow request %d is %s, not ACCEPTED", borrow.ID, borrow.Status)
	}
	pickupAddress = strings.TrimSpace(pickupAddress)
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if pickupAddress == "" || deliveryAddress == "" {
		return nil, fmt.Errorf("%w: pickup and delivery addresses are required", errs.ErrInvalidRequest)
	}
	if feePaise <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !IsWellFormedCode(code) {
		return nil, fmt.Errorf("%w: malformed verification code", errs.ErrInvalidRequest)
	}

	return &DeliveryJob{
		BorrowRequestID:  borrow.ID,
		BookID:           borrow.BookID,
		OwnerID:          borrow.OwnerID,
		BorrowerID:       borrow.BorrowerID,
		Status:           DeliveryStatusPending,
		PickupAddress:    pickupAddress,
		DeliveryAddress:  deliveryAddress,
		PaymentPolicy:    PaymentPolicyPrepaid,
		PaymentStatus:    PaymentStatusPending,
		FeePaise:         feePaise,
		VerificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// NewReturnJob creates the return trip for a delivered forward job.
// Addresses are swapped, the original agent is preassigned when known and the
// payment gate is waived.
func NewReturnJob(forward *DeliveryJob, code string, now time.Time) (*DeliveryJob, error) {
	if forward == nil {
		return nil, errs.ErrDeliveryNotFound
	}
	if forward.IsReturn {
		return nil, errs.NewPreconditionError("delivery %d is already a return trip", forward.ID)
	}
	if forward.Status.Rank() < DeliveryStatusDelivered.Rank() {
		return nil, errs.NewPreconditionError("delivery %d has not been delivered yet", forward.ID)
	}
	if !IsWellFormedCode(code) {
		return nil, fmt.Errorf("%w: malformed verification code", errs.ErrInvalidRequest)
	}

	job := &DeliveryJob{
		BorrowRequestID:  forward.BorrowRequestID,
		BookID:           forward.BookID,
		OwnerID:          forward.OwnerID,
		BorrowerID:       forward.BorrowerID,
		IsReturn:         true,
		Status:           DeliveryStatusPending,
		PickupAddress:    forward.DeliveryAddress,
		DeliveryAddress:  forward.PickupAddress,
		PaymentPolicy:    PaymentPolicyWaived,
		PaymentStatus:    PaymentStatusCompleted,
		VerificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if forward.AgentID != nil {
		agent := *forward.AgentID
		job.AgentID = &agent
		job.Status = DeliveryStatusAssigned
	}
	return job, nil
}

// IsAssignedTo reports whether userID is the job's agent
func (j *DeliveryJob) IsAssignedTo(userID uint64) bool {
	return j.AgentID != nil && userID != 0 && *j.AgentID == userID
}

// IsClaimable reports whether the job is still open for agents
func (j *DeliveryJob) IsClaimable() bool {
	return j.Status == DeliveryStatusPending && j.AgentID == nil
}

// IsPaid reports whether the payment gate is open
func (j *DeliveryJob) IsPaid() bool {
	return j.PaymentStatus == PaymentStatusCompleted
}

// CanReveal reports whether userID may see the verification code
func (j *DeliveryJob) CanReveal(userID uint64) bool {
	if userID == 0 {
		return false
	}
	return userID == j.BorrowerID || userID == j.OwnerID || j.IsAssignedTo(userID)
}

// CheckVerification evaluates a code submission without mutating the job.
// It returns alreadyVerified=true when the code was accepted earlier.
func (j *DeliveryJob) CheckVerification(requesterID uint64, code string) (alreadyVerified bool, err error) {
	if !j.IsAssignedTo(requesterID) {
		return false, errs.ErrForbidden
	}
	if !j.IsPaid() {
		return false, errs.ErrPaymentNotComplete
	}
	if j.CodeVerifiedAt != nil {
		return true, nil
	}
	if !CodesMatch(code, j.VerificationCode) {
		return false, errs.ErrInvalidCode
	}
	return false, nil
}

// Transition describes a status change produced by Advance
type Transition struct {
	From    DeliveryStatus
	To      DeliveryStatus
	Changed bool
}

// Advance applies a status request from callerID to the in-memory job.
// Guards are evaluated in order: assigned agent, payment, code verification,
// then the transition itself. Requesting the current status is a no-op.
func (j *DeliveryJob) Advance(callerID uint64, target DeliveryStatus, now time.Time) (Transition, error) {
	tr := Transition{From: j.Status, To: target}

	if !target.IsValid() {
		return tr, fmt.Errorf("%w: unknown delivery status %q", errs.ErrInvalidRequest, target)
	}
	if target.Rank() <= DeliveryStatusAssigned.Rank() && target != j.Status {
		return tr, errs.NewPreconditionError("status %s is reached only by claiming the job", target)
	}
	if !j.IsAssignedTo(callerID) {
		return tr, errs.NewPreconditionError("caller is not the assigned agent")
	}
	if !j.IsPaid() {
		return tr, errs.NewPreconditionError("payment is not completed")
	}
	if j.CodeVerifiedAt == nil {
		return tr, errs.NewPreconditionError("verification code has not been verified")
	}

	if target == j.Status {
		return tr, nil
	}
	if target.Rank() < j.Status.Rank() {
		return tr, errs.NewPreconditionError("cannot move back from %s to %s", j.Status, target)
	}
	if next, ok := j.Status.Next(); !ok || next != target {
		return tr, errs.NewPreconditionError("cannot move from %s to %s", j.Status, target)
	}

	j.Status = target
	switch target {
	case DeliveryStatusPickedUp:
		if j.PickupCompletedAt == nil {
			t := now
			j.PickupCompletedAt = &t
		}
	case DeliveryStatusDelivered:
		if j.DeliveryCompletedAt == nil {
			t := now
			j.DeliveryCompletedAt = &t
		}
	}
	j.UpdatedAt = now
	tr.Changed = true
	return tr, nil
}
