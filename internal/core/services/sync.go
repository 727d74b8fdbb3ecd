// Package services implements the core synchronization workflow.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-labs/confsync/internal/core/domain"
	"github.com/crestline-labs/confsync/internal/core/ports/driven"
	"github.com/crestline-labs/confsync/internal/core/ports/driving"
	"github.com/crestline-labs/confsync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator drives the control plane from an authenticated session
// through repository resolution, asset discovery, selective import and
// convergence polling. Stages are strictly sequential; only the two poll
// loops retry, everything else fails the run on first error.
type SyncOrchestrator struct {
	cp    driven.ControlPlane
	clock driven.Clock
}

// NewSyncOrchestrator creates a sync orchestrator.
func NewSyncOrchestrator(cp driven.ControlPlane, clock driven.Clock) *SyncOrchestrator {
	return &SyncOrchestrator{cp: cp, clock: clock}
}

// Run executes the whole workflow. The local branch must already be pushed;
// Run only talks to the control plane.
func (o *SyncOrchestrator) Run(
	ctx context.Context,
	cfg domain.Config,
	target domain.SyncTarget,
) (*driving.SyncResult, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy := pollPolicy{interval: cfg.PollInterval, maxWait: cfg.MaxPollWait, clock: o.clock}

	// 1. Resolve credentials and account into a session
	logger.Stage(1, "session")
	session, err := o.resolveSession(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	logger.Info("authenticated against %s, account %d", session.APIHost, session.AccountID)

	// 2. Resolve the remote repository
	logger.Stage(2, "repository")
	repo, err := o.resolveRepository(ctx, cfg, *session, target)
	if err != nil {
		return nil, fmt.Errorf("resolve repository: %w", err)
	}
	logger.Info("using repository %d (%s)", repo.ID, repo.Name)

	// 3. Wait for the asset listing to populate
	logger.Stage(3, "assets")
	assets, err := o.awaitAssets(ctx, policy, *session, repo.ID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	logger.Info("repository exposes %d assets", len(assets))

	// 4. Preview the import and keep only changed assets
	logger.Stage(4, "preview")
	changed, err := o.detectChanges(ctx, *session, repo.ID, assets, cfg.Namespace)
	if err != nil {
		return nil, fmt.Errorf("preview import: %w", err)
	}

	// 5. Import, only when the preview found changes
	if len(changed) > 0 {
		logger.Stage(5, "import")
		if err := o.cp.Import(ctx, *session, repo.ID, changed, cfg.Namespace); err != nil {
			return nil, fmt.Errorf("import %d assets: %w", len(changed), err)
		}
		logger.Info("imported %d of %d assets into %s", len(changed), len(assets), cfg.Namespace)
	} else {
		logger.Info("no asset changed, skipping import")
	}

	// 6. Refetch the repository bookkeeping
	logger.Stage(6, "refetch")
	if err := o.cp.Refetch(ctx, *session, repo.ID); err != nil {
		return nil, fmt.Errorf("refetch repository %d: %w", repo.ID, err)
	}

	// 7. Poll until the remote succeeded commit reaches the local SHA
	logger.Stage(7, "convergence")
	waited, err := o.awaitConvergence(ctx, policy, *session, repo.ID, target.LocalCommitSHA)
	if err != nil {
		return nil, fmt.Errorf("await convergence: %w", err)
	}

	return &driving.SyncResult{
		RepositoryID:   repo.ID,
		RepositoryName: repo.Name,
		AssetsFound:    len(assets),
		AssetsImported: len(changed),
		ConvergedAfter: waited,
	}, nil
}

// resolveSession exchanges the refresh token and settles the account scope.
// An explicit account id is taken verbatim; otherwise the caller's
// permission listing decides, which needs an admin credential.
func (o *SyncOrchestrator) resolveSession(ctx context.Context, cfg domain.Config) (*domain.Session, error) {
	token, err := o.cp.RefreshAccessToken(ctx, cfg.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("exchange refresh token: %w", err)
	}

	accountID := cfg.AccountID
	if accountID == 0 {
		accountID, err = o.cp.DefaultAccount(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("resolve account: %w", err)
		}
	}

	return &domain.Session{
		AccessToken: token,
		AccountID:   accountID,
		APIHost:     cfg.APIHost,
	}, nil
}

// resolveRepository finds or creates the remote repository resource. An
// explicit repo id bypasses lookup entirely. Exactly one existing match is
// accepted only when it tracks the local branch; multiple matches are never
// auto-resolved.
func (o *SyncOrchestrator) resolveRepository(
	ctx context.Context,
	cfg domain.Config,
	s domain.Session,
	target domain.SyncTarget,
) (*domain.RepositoryRef, error) {
	if cfg.RepoID != 0 {
		repo, err := o.cp.GetRepository(ctx, s, cfg.RepoID)
		if err != nil {
			return nil, fmt.Errorf("get repository %d: %w", cfg.RepoID, err)
		}
		return repo, nil
	}

	name := cfg.RepoName
	if name == "" {
		name = domain.DeriveRepositoryName(target.Workdir, target.LocalBranch)
	}

	matches, err := o.cp.FindRepositories(ctx, s, name)
	if err != nil {
		return nil, fmt.Errorf("find repositories named %q: %w", name, err)
	}

	switch len(matches) {
	case 0:
		ref := domain.RepositoryRef{
			Name:      name,
			Branch:    target.LocalBranch,
			SourceURL: domain.NormalizeRemoteURL(target.RemoteURL),
		}
		id, err := o.cp.CreateRepository(ctx, s, ref)
		if err != nil {
			return nil, fmt.Errorf("create repository %q: %w", name, err)
		}
		ref.ID = id
		logger.Info("created repository %d for %s", id, ref.SourceURL)
		return &ref, nil

	case 1:
		repo := matches[0]
		if repo.Branch != target.LocalBranch {
			return nil, fmt.Errorf(
				"repository %q (id %d) tracks branch %q but the local branch is %q; "+
					"change the repository's commit reference on the control plane or pass an explicit --repo-id: %w",
				repo.Name, repo.ID, repo.Branch, target.LocalBranch, domain.ErrBranchMismatch)
		}
		return &repo, nil

	default:
		return nil, fmt.Errorf(
			"%d repositories named %q; pass an explicit --repo-id to disambiguate: %w",
			len(matches), name, domain.ErrRepoAmbiguous)
	}
}

// awaitAssets polls the asset listing until it is non-empty. The control
// plane populates assets asynchronously after repository creation, so an
// empty listing means "not yet" rather than "never", at least until the
// poll bound expires.
func (o *SyncOrchestrator) awaitAssets(
	ctx context.Context,
	policy pollPolicy,
	s domain.Session,
	repoID int64,
) ([]domain.Asset, error) {
	var assets []domain.Asset
	err := policy.poll(ctx, "asset listing", func(ctx context.Context) (bool, error) {
		var err error
		assets, err = o.cp.ListAssets(ctx, s, repoID)
		if err != nil {
			return false, err
		}
		return len(assets) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// detectChanges previews the import of all assets in one batched call and
// returns the subset whose outcome is anything but unchanged.
func (o *SyncOrchestrator) detectChanges(
	ctx context.Context,
	s domain.Session,
	repoID int64,
	assets []domain.Asset,
	ns domain.Namespace,
) ([]domain.Asset, error) {
	decisions, err := o.cp.PreviewImport(ctx, s, repoID, assets, ns)
	if err != nil {
		return nil, err
	}

	var changed []domain.Asset
	for _, d := range decisions {
		if d.Changed() {
			logger.Debug("asset %s: %s", d.AssetHref, d.Outcome)
			changed = append(changed, domain.Asset{Href: d.AssetHref})
		}
	}
	return changed, nil
}

// awaitConvergence polls the repository resource until its succeeded commit
// equals sha, returning the time spent waiting.
func (o *SyncOrchestrator) awaitConvergence(
	ctx context.Context,
	policy pollPolicy,
	s domain.Session,
	repoID int64,
	sha string,
) (waited time.Duration, err error) {
	start := o.clock.Now()
	err = policy.poll(ctx, "convergence on "+sha, func(ctx context.Context) (bool, error) {
		repo, err := o.cp.GetRepository(ctx, s, repoID)
		if err != nil {
			return false, err
		}
		logger.Debug("succeeded commit: %q", repo.SucceededCommit)
		return repo.SucceededCommit != "" && repo.SucceededCommit == sha, nil
	})
	if err != nil {
		return 0, err
	}
	return o.clock.Now().Sub(start), nil
}
