package driven

import (
	"context"
	"time"
)

// Clock abstracts time for the poll loops so convergence behaviour is
// testable without real wall-clock waits.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}
