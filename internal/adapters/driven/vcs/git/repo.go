// Package git implements the driven.VCS port over go-git against the
// repository in the current working directory.
package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/crestline-labs/confsync/internal/core/ports/driven"
	"github.com/crestline-labs/confsync/internal/logger"
)

// DefaultRemoteName is the remote all operations target.
const DefaultRemoteName = "origin"

// DetachedHead is the sentinel branch name reported when HEAD is not on a
// branch.
const DetachedHead = "HEAD"

// Ensure Repo implements the port.
var _ driven.VCS = (*Repo)(nil)

// Repo is the local git repository adapter.
type Repo struct {
	repo   *gogit.Repository
	remote string
}

// Open opens the repository containing path, walking up to find the .git
// directory the way the git CLI does.
func Open(path string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}
	return &Repo{repo: repo, remote: DefaultRemoteName}, nil
}

// CurrentBranch returns the checked-out branch name, or the DetachedHead
// sentinel when HEAD does not point at a branch.
func (r *Repo) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return DetachedHead, nil
	}
	return head.Name().Short(), nil
}

// CurrentCommit returns the full SHA of the checked-out commit.
func (r *Repo) CurrentCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// RemoteURL returns the first configured URL of origin.
func (r *Repo) RemoteURL(_ context.Context) (string, error) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return "", fmt.Errorf("remote %s: %w", r.remote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL configured", r.remote)
	}
	return urls[0], nil
}

// Push pushes the current branch to origin. The first attempt follows the
// branch's configured upstream; when that fails because no upstream exists,
// the upstream is recorded and the push retried with an explicit refspec,
// matching `git push -u`.
func (r *Repo) Push(ctx context.Context) error {
	branch, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if branch == DetachedHead {
		return errors.New("cannot push a detached HEAD")
	}

	err = r.repo.PushContext(ctx, &gogit.PushOptions{RemoteName: r.remote})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) || err == nil {
		return nil
	}

	logger.Warn("push failed (%v), retrying with upstream setup", err)
	if err := r.setUpstream(branch); err != nil {
		return err
	}

	refspec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err = r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []gitconfig.RefSpec{refspec},
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("push %s to %s: %w", branch, r.remote, err)
	}
	return nil
}

// setUpstream records origin as the upstream of branch.
func (r *Repo) setUpstream(branch string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("read repository config: %w", err)
	}

	if cfg.Branches == nil {
		cfg.Branches = map[string]*gitconfig.Branch{}
	}
	cfg.Branches[branch] = &gitconfig.Branch{
		Name:   branch,
		Remote: r.remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}

	if err := r.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("record upstream for %s: %w", branch, err)
	}
	return nil
}
