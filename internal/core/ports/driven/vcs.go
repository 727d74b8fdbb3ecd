package driven

import "context"

// VCS is the narrow view of the local git repository the run needs.
// Deliberately minimal: the tool does not manage history.
type VCS interface {
	// CurrentBranch returns the checked-out branch name, or the literal
	// "HEAD" when the repository is in detached-head state.
	CurrentBranch(ctx context.Context) (string, error)

	// CurrentCommit returns the full SHA of the checked-out commit.
	CurrentCommit(ctx context.Context) (string, error)

	// RemoteURL returns the configured origin URL.
	RemoteURL(ctx context.Context) (string, error)

	// Push pushes the current branch to origin. A push rejected for
	// lacking an upstream is retried after recording one.
	Push(ctx context.Context) error
}
