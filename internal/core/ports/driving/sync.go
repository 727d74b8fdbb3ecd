// Package driving defines the interfaces through which the outside world
// drives the core. The CLI is the only driving adapter.
package driving

import (
	"context"
	"time"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// SyncResult summarizes a completed run.
type SyncResult struct {
	RepositoryID   int64
	RepositoryName string

	// AssetsFound is the number of importable assets the repository
	// exposed; AssetsImported is how many of them the preview flagged as
	// changed and the run imported. Zero imported means the import stage
	// was skipped.
	AssetsFound    int
	AssetsImported int

	// ConvergedAfter is the wall-clock time spent waiting for the remote
	// succeeded commit to reach the local SHA.
	ConvergedAfter time.Duration
}

// SyncOrchestrator runs the full synchronization workflow against an
// already-pushed local state.
type SyncOrchestrator interface {
	Run(ctx context.Context, cfg domain.Config, target domain.SyncTarget) (*SyncResult, error)
}
