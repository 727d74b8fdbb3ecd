// Package clock provides the production driven.Clock.
package clock

import (
	"context"
	"time"

	"github.com/crestline-labs/confsync/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System is the real wall clock. Sleep is interruptible by context
// cancellation, which is the only way to stop a long poll.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is done.
func (System) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
