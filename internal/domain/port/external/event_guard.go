package external

import "context"

// EventGuard deduplicates gateway callback deliveries before they reach settlement.
// It only saves work; settlement stays idempotent without it.
type EventGuard interface {
	// CheckAndMark records eventID and reports whether it was already seen
	CheckAndMark(ctx context.Context, eventID string) (duplicate bool, err error)

	// Forget removes eventID so a failed delivery can be retried
	Forget(ctx context.Context, eventID string) error
}
