package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest     = 4000
	CodeInvalidAmount      = 4002
	CodeInvalidCode        = 4003
	CodePaymentNotComplete = 4004
	CodePreconditionFailed = 4005
	CodeInvalidSignature   = 4006
	CodeUnauthorized       = 4010
	CodeInsufficientFunds  = 4020
	CodeForbidden          = 4030
	CodeNotFound           = 4040
	CodeAlreadyAssigned    = 4090
	CodeDuplicate          = 4091

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeGateway        = 5020
)

// Base error types
var (
	// ErrInsufficientFunds is returned when an account cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient points")

	// ErrAlreadyAssigned is returned when a delivery job was claimed by another agent first
	ErrAlreadyAssigned = errors.New("delivery job already assigned")

	// ErrPreconditionFailed is returned when a state transition guard does not hold
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidCode is returned when a submitted verification code does not match
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrPaymentNotComplete is returned when an operation requires a settled payment
	ErrPaymentNotComplete = errors.New("payment not complete")

	// ErrInvalidSignature is returned when a payment signature does not verify
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrForbidden is returned when the caller may not act on the resource
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrDeliveryNotFound is returned when the requested delivery job doesn't exist
	ErrDeliveryNotFound = errors.New("delivery job not found")

	// ErrPaymentNotFound is returned when no payment intent matches the gateway order
	ErrPaymentNotFound = errors.New("payment intent not found")

	// ErrBorrowRequestNotFound is returned when the borrow request doesn't exist
	ErrBorrowRequestNotFound = errors.New("borrow request not found")

	// ErrInvalidAmount is returned when a point or money amount is not positive
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDuplicate is returned when a unique constraint would be violated
	ErrDuplicate = errors.New("resource already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrGateway is returned when the payment gateway cannot be reached or rejects the call
	ErrGateway = errors.New("payment gateway error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrAlreadyAssigned):
		return CodeAlreadyAssigned
	case errors.Is(err, ErrPreconditionFailed):
		return CodePreconditionFailed
	case errors.Is(err, ErrInvalidCode):
		return CodeInvalidCode
	case errors.Is(err, ErrPaymentNotComplete):
		return CodePaymentNotComplete
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConstraintViolation):
		return CodeDuplicate
	case errors.Is(err, ErrGateway):
		return CodeGateway
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	AccountID uint64
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d more points", e.Shortfall())
}

// Shortfall is the number of points missing to cover the debit
func (e *InsufficientFundsError) Shortfall() int64 {
	if e.Required <= e.Available {
		return 0
	}
	return e.Required - e.Available
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"account_id": e.AccountID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountID uint64, required, available int64) error {
	return &InsufficientFundsError{
		AccountID: accountID,
		Required:  required,
		Available: available,
	}
}

// AlreadyAssignedError reports the agent currently holding a job
type AlreadyAssignedError struct {
	JobID          uint64
	CurrentAgentID uint64
}

// Error implements the error interface
func (e *AlreadyAssignedError) Error() string {
	if e.CurrentAgentID == 0 {
		return fmt.Sprintf("delivery %d is no longer available", e.JobID)
	}
	return fmt.Sprintf("delivery %d already assigned to agent %d", e.JobID, e.CurrentAgentID)
}

// Is checks if the target error is an ErrAlreadyAssigned
func (e *AlreadyAssignedError) Is(target error) bool {
	return target == ErrAlreadyAssigned
}

// LogFields returns a map of fields for structured logging
func (e *AlreadyAssignedError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "already_assigned",
		"job_id":           e.JobID,
		"current_agent_id": e.CurrentAgentID,
		"error_code":       CodeAlreadyAssigned,
	}
}

// NewAlreadyAssignedError creates a claim conflict error
func NewAlreadyAssignedError(jobID, currentAgentID uint64) error {
	return &AlreadyAssignedError{JobID: jobID, CurrentAgentID: currentAgentID}
}

// PreconditionError names the guard that blocked a transition
type PreconditionError struct {
	Reason string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// Is checks if the target error is an ErrPreconditionFailed
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// LogFields returns a map of fields for structured logging
func (e *PreconditionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "precondition_failed",
		"reason":     e.Reason,
		"error_code": CodePreconditionFailed,
	}
}

// NewPreconditionError creates a guard violation error
func NewPreconditionError(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// PaymentError represents an error raised while settling a payment intent
type PaymentError struct {
	IntentID       uint64
	GatewayOrderID string
	Reason         string
	Err            error
}

// Error implements the error interface for PaymentError
func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment error for intent %d (order: %s): %s - %v",
		e.IntentID, e.GatewayOrderID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "payment_error",
		"intent_id":        e.IntentID,
		"gateway_order_id": e.GatewayOrderID,
		"reason":           e.Reason,
		"error":            e.Err.Error(),
		"error_code":       ErrorCode(e.Err),
	}
}

// NewPaymentError creates a detailed payment error
func NewPaymentError(intentID uint64, orderID, reason string, err error) error {
	return &PaymentError{
		IntentID:       intentID,
		GatewayOrderID: orderID,
		Reason:         reason,
		Err:            err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrDeliveryNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrBorrowRequestNotFound)
}

// IsInsufficientFundsError checks if the error is related to insufficient points
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsPreconditionError checks if the error is a guard violation
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}
