package driven

import (
	"context"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// ControlPlane is the remote configuration-management API the run drives.
// Every method maps to a single HTTP call; retries for transient network
// failures live inside the adapter, not here. Methods taking a Session are
// scoped to its account and authenticated with its token.
type ControlPlane interface {
	// RefreshAccessToken exchanges a refresh token for a bearer access
	// token via the OAuth2 refresh grant.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// DefaultAccount returns the first account referenced in the caller's
	// permission listing. Requires an administrative credential; returns
	// domain.ErrAccountUnresolved when no account can be parsed.
	DefaultAccount(ctx context.Context, accessToken string) (int64, error)

	// FindRepositories returns the repositories whose name exactly equals
	// name. Order is unspecified.
	FindRepositories(ctx context.Context, s domain.Session, name string) ([]domain.RepositoryRef, error)

	// CreateRepository registers a new repository bound to ref.SourceURL
	// and ref.Branch and returns its identifier.
	CreateRepository(ctx context.Context, s domain.Session, ref domain.RepositoryRef) (int64, error)

	// GetRepository fetches the repository resource, including its
	// succeeded commit.
	GetRepository(ctx context.Context, s domain.Session, id int64) (*domain.RepositoryRef, error)

	// ListAssets returns the importable assets discovered in the
	// repository. The control plane populates this asynchronously after
	// creation, so an empty list is not an error.
	ListAssets(ctx context.Context, s domain.Session, repoID int64) ([]domain.Asset, error)

	// PreviewImport reports, per asset, what importing it into ns would
	// change, without applying anything.
	PreviewImport(ctx context.Context, s domain.Session, repoID int64, assets []domain.Asset, ns domain.Namespace) ([]domain.ImportDecision, error)

	// Import applies the given assets into ns in one batch. The batch is
	// atomic from the caller's perspective: anything but the API's
	// no-content success signature is an error.
	Import(ctx context.Context, s domain.Session, repoID int64, assets []domain.Asset, ns domain.Namespace) error

	// Refetch asks the control plane to re-synchronize its bookkeeping for
	// the whole repository, with auto-import disabled.
	Refetch(ctx context.Context, s domain.Session, repoID int64) error
}
