// Package cli is the driving adapter: cobra commands that assemble the
// configuration, the adapters and the sync orchestrator.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/confsync/internal/adapters/driven/api"
	"github.com/crestline-labs/confsync/internal/adapters/driven/clock"
	vcsgit "github.com/crestline-labs/confsync/internal/adapters/driven/vcs/git"
	"github.com/crestline-labs/confsync/internal/core/ports/driven"
)

var rootCmd = &cobra.Command{
	Use:   "confsync",
	Short: "Synchronise a git-versioned configuration repository with the control plane",
	Long: `confsync pushes the local branch and then drives the control plane
through repository discovery, import preview, selective import and
convergence polling, until the remote succeeded commit equals the local
HEAD.

Configuration is read from ~/.confsync/config.toml, CONFSYNC_* environment
variables and flags, in that order of precedence.`,
	SilenceUsage: true,
}

// Root-level flags, the complete recognized option set.
var (
	flagConfigFile   string
	flagRefreshToken string
	flagAccountID    int64
	flagAPIHost      string
	flagRepoID       int64
	flagRepoName     string
	flagNamespace    string
	flagVerbose      bool
	flagPollInterval time.Duration
	flagMaxPollWait  time.Duration
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config", "", "Path to the config file (default ~/.confsync/config.toml)")
	pf.StringVar(&flagRefreshToken, "refresh-token", "", "Refresh token for the control plane")
	pf.Int64Var(&flagAccountID, "account-id", 0, "Account to operate under (default: resolved from permissions, needs admin)")
	pf.StringVar(&flagAPIHost, "api-host", "", "Control plane API hostname")
	pf.Int64Var(&flagRepoID, "repo-id", 0, "Remote repository id, bypassing name resolution")
	pf.StringVar(&flagRepoName, "repo-name", "", "Remote repository name (default: <workdir>_<branch>)")
	pf.StringVar(&flagNamespace, "namespace", "", "Import namespace, primary or alternate (default primary)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging to stderr")
	pf.DurationVar(&flagPollInterval, "poll-interval", 0, "Interval between poll attempts (default 15s)")
	pf.DurationVar(&flagMaxPollWait, "max-poll-wait", 0, "Upper bound on time spent in a poll loop (default 24h)")
}

// Factories for the driven adapters; tests replace these with fakes.
var (
	newControlPlane = func(apiHost string) (driven.ControlPlane, error) {
		return api.NewClient(apiHost)
	}
	newVCS = func(path string) (driven.VCS, error) {
		return vcsgit.Open(path)
	}
	runClock driven.Clock = clock.System{}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
