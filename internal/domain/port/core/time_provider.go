package core

import (
	"context"
	"time"
)

// Duration keeps time.Duration out of use case signatures
type Duration time.Duration

// Second is the unit settlement and gateway timeouts are configured in
const Second = Duration(time.Second)

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock use cases read. Tests swap in a fixed clock so
// verification and settlement timestamps are deterministic.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
	// WithTimeout bounds an outbound call such as a gateway order request
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
}
