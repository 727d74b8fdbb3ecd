package domain

import "errors"

// Domain errors represent failures of the synchronization workflow itself.
// These are distinct from transport errors raised by the API adapter.
var (
	// ErrMissingCredential indicates no refresh token was configured.
	ErrMissingCredential = errors.New("no refresh token configured")

	// ErrAccountUnresolved indicates the permission listing contained no
	// account reference. Resolving the default account requires an
	// administrative credential.
	ErrAccountUnresolved = errors.New("no account reference in permission listing")

	// ErrRepoAmbiguous indicates the derived repository name matched more
	// than one remote repository. The operator must disambiguate with an
	// explicit repository id.
	ErrRepoAmbiguous = errors.New("repository name is ambiguous")

	// ErrBranchMismatch indicates an existing remote repository tracks a
	// branch other than the local one. Fixed remotely, never auto-corrected.
	ErrBranchMismatch = errors.New("remote repository tracks a different branch")

	// ErrRepoCreateFailed indicates repository creation returned no
	// identifier.
	ErrRepoCreateFailed = errors.New("repository creation returned no identifier")

	// ErrUnexpectedResponse indicates the control plane returned a payload
	// missing a required field or status. The payload is echoed alongside.
	ErrUnexpectedResponse = errors.New("unexpected control plane response")

	// ErrPollTimeout indicates a poll loop exhausted its configured maximum
	// wait before the awaited condition held.
	ErrPollTimeout = errors.New("poll deadline exceeded")
)
