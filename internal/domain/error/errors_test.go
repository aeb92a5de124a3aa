package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4020},
		{"DetailedInsufficientFunds", NewInsufficientFundsError(1, 20, 15), 4020},
		{"AlreadyAssigned", NewAlreadyAssignedError(7, 3), 4090},
		{"Precondition", NewPreconditionError("payment is not completed"), 4005},
		{"InvalidCode", ErrInvalidCode, 4003},
		{"PaymentNotComplete", ErrPaymentNotComplete, 4004},
		{"InvalidSignature", ErrInvalidSignature, 4006},
		{"Forbidden", ErrForbidden, 4030},
		{"Unauthorized", ErrUnauthorized, 4010},
		{"DeliveryNotFound", ErrDeliveryNotFound, 4040},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"Duplicate", ErrDuplicate, 4091},
		{"ConstraintViolation", ErrConstraintViolation, 4091},
		{"Gateway", ErrGateway, 5020},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidCode), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError(2, 35, 20)

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Error("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}
	if !IsInsufficientFundsError(fmt.Errorf("transfer: %w", err)) {
		t.Error("IsInsufficientFundsError on wrapped error = false, want true")
	}

	var detailed *InsufficientFundsError
	if !errors.As(err, &detailed) {
		t.Fatal("errors.As failed to extract *InsufficientFundsError")
	}
	if detailed.Shortfall() != 15 {
		t.Errorf("Shortfall() = %d, want 15", detailed.Shortfall())
	}
	if want := "insufficient points: need 15 more points"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	fields := detailed.LogFields()
	if fields["account_id"] != uint64(2) || fields["error_code"] != CodeInsufficientFunds {
		t.Errorf("LogFields() = %v", fields)
	}
}

func TestAlreadyAssignedError(t *testing.T) {
	err := NewAlreadyAssignedError(11, 4)
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Error("errors.Is(err, ErrAlreadyAssigned) = false, want true")
	}
	if want := "delivery 11 already assigned to agent 4"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	gone := NewAlreadyAssignedError(11, 0)
	if want := "delivery 11 is no longer available"; gone.Error() != want {
		t.Errorf("Error() = %q, want %q", gone.Error(), want)
	}
}

func TestPreconditionError(t *testing.T) {
	err := NewPreconditionError("cannot move from %s to %s", "ASSIGNED", "DELIVERED")
	if !IsPreconditionError(err) {
		t.Error("IsPreconditionError = false, want true")
	}
	if want := "precondition failed: cannot move from ASSIGNED to DELIVERED"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPaymentError(t *testing.T) {
	err := NewPaymentError(5, "order_1", "signature mismatch", ErrInvalidSignature)

	if !errors.Is(err, ErrInvalidSignature) {
		t.Error("PaymentError does not unwrap to its cause")
	}
	if ErrorCode(err) != CodeInvalidSignature {
		t.Errorf("ErrorCode = %d, want %d", ErrorCode(err), CodeInvalidSignature)
	}

	var paymentErr *PaymentError
	if !errors.As(err, &paymentErr) {
		t.Fatal("errors.As failed to extract *PaymentError")
	}
	if paymentErr.LogFields()["gateway_order_id"] != "order_1" {
		t.Errorf("LogFields() = %v", paymentErr.LogFields())
	}
}

func TestIsNotFoundError(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrAccountNotFound, ErrDeliveryNotFound, ErrPaymentNotFound, ErrBorrowRequestNotFound} {
		if !IsNotFoundError(fmt.Errorf("lookup: %w", err)) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}
	if IsNotFoundError(ErrForbidden) {
		t.Error("IsNotFoundError(ErrForbidden) = true, want false")
	}
}
