package domain

import "fmt"

// SyncTarget is the local side of a run, captured once from git before any
// remote call. The run succeeds when the remote succeeded_commit equals
// LocalCommitSHA.
type SyncTarget struct {
	// Workdir is the local working directory; its base name seeds the
	// derived remote repository name.
	Workdir string

	// LocalBranch is the checked-out branch, or the literal "HEAD" when
	// the repository is in detached-head state.
	LocalBranch string

	LocalCommitSHA string

	// RemoteURL is the configured origin URL, used when the run has to
	// create the remote repository resource.
	RemoteURL string
}

// Namespace is the remote categorization imported artifacts register under.
type Namespace string

const (
	NamespacePrimary   Namespace = "primary"
	NamespaceAlternate Namespace = "alternate"
)

// ParseNamespace validates a namespace name from configuration.
func ParseNamespace(s string) (Namespace, error) {
	switch Namespace(s) {
	case NamespacePrimary, NamespaceAlternate:
		return Namespace(s), nil
	case "":
		return NamespacePrimary, nil
	default:
		return "", fmt.Errorf("unknown namespace %q (want primary or alternate)", s)
	}
}
