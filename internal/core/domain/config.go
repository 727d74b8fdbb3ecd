package domain

import (
	"fmt"
	"time"
)

// Polling defaults. The maximum wait is deliberately generous: the remote
// import pipeline's duration is unpredictable and the historical behaviour
// was an unbounded wait. The bound exists so a stuck pipeline surfaces as
// ErrPollTimeout instead of an indefinitely hanging run.
const (
	DefaultPollInterval = 15 * time.Second
	DefaultMaxPollWait  = 24 * time.Hour
)

// Config is the explicit, enumerated set of options a run recognizes.
// Populated from flags, environment and an optional config file before any
// component runs; components never read the environment themselves.
type Config struct {
	// RefreshToken is exchanged for a bearer access token. Required.
	RefreshToken string

	// AccountID scopes all API calls. Zero means "resolve from the
	// caller's permission listing", which needs an admin credential.
	AccountID int64

	// APIHost is the control plane hostname, without scheme.
	APIHost string

	// RepoID, when non-zero, bypasses repository resolution entirely.
	RepoID int64

	// RepoName overrides the name derived from workdir and branch.
	RepoName string

	// Namespace selects the import namespace, primary by default.
	Namespace Namespace

	// Verbose enables debug logging to stderr.
	Verbose bool

	// PollInterval is the fixed delay between poll attempts.
	PollInterval time.Duration

	// MaxPollWait bounds each poll loop (asset listing, convergence).
	MaxPollWait time.Duration
}

// WithDefaults fills unset polling knobs and the namespace.
func (c Config) WithDefaults() Config {
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPollWait == 0 {
		c.MaxPollWait = DefaultMaxPollWait
	}
	if c.Namespace == "" {
		c.Namespace = NamespacePrimary
	}
	return c
}

// Validate checks the options that must hold before any remote call.
func (c Config) Validate() error {
	if c.RefreshToken == "" {
		return ErrMissingCredential
	}
	if c.APIHost == "" {
		return fmt.Errorf("no API host configured")
	}
	if _, err := ParseNamespace(string(c.Namespace)); err != nil {
		return err
	}
	return nil
}
