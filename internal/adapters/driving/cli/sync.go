package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/confsync/internal/adapters/driven/config"
	"github.com/crestline-labs/confsync/internal/core/domain"
	"github.com/crestline-labs/confsync/internal/core/ports/driven"
	"github.com/crestline-labs/confsync/internal/core/services"
	"github.com/crestline-labs/confsync/internal/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the local branch and drive the control plane to convergence",
	Long: `Pushes the current branch to origin, then runs the synchronization
workflow: resolve credentials and account, find or create the remote
repository, wait for its assets, import what the preview reports as
changed, trigger a refetch and poll until the remote succeeded commit
equals the local HEAD.

Re-running against an already-converged remote is safe: the preview finds
nothing to import and the poll converges immediately.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Verbose)

	if cfg.RefreshToken == "" {
		token, err := config.PromptRefreshToken(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		cfg.RefreshToken = token
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	vcs, err := newVCS(workdir)
	if err != nil {
		return err
	}

	target, err := captureTarget(ctx, workdir, vcs)
	if err != nil {
		return err
	}
	cmd.Printf("Local state: branch %s, commit %s\n", target.LocalBranch, target.LocalCommitSHA)

	cmd.Println("Pushing branch to origin...")
	if err := vcs.Push(ctx); err != nil {
		return fmt.Errorf("push: %w", err)
	}

	cp, err := newControlPlane(cfg.APIHost)
	if err != nil {
		return err
	}

	orch := services.NewSyncOrchestrator(cp, runClock)
	res, err := orch.Run(ctx, cfg, target)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Repository %d (%s): %d assets, %d imported\n",
		res.RepositoryID, res.RepositoryName, res.AssetsFound, res.AssetsImported)
	cmd.Printf("Converged on %s after %s\n",
		target.LocalCommitSHA, res.ConvergedAfter.Round(time.Second))
	return nil
}

// captureTarget reads the local side of the run once, before any remote
// call.
func captureTarget(ctx context.Context, workdir string, vcs driven.VCS) (domain.SyncTarget, error) {
	branch, err := vcs.CurrentBranch(ctx)
	if err != nil {
		return domain.SyncTarget{}, fmt.Errorf("current branch: %w", err)
	}
	sha, err := vcs.CurrentCommit(ctx)
	if err != nil {
		return domain.SyncTarget{}, fmt.Errorf("current commit: %w", err)
	}
	remote, err := vcs.RemoteURL(ctx)
	if err != nil {
		return domain.SyncTarget{}, fmt.Errorf("remote url: %w", err)
	}

	return domain.SyncTarget{
		Workdir:        workdir,
		LocalBranch:    branch,
		LocalCommitSHA: sha,
		RemoteURL:      remote,
	}, nil
}

// loadConfig merges file, environment and flags, flags winning.
func loadConfig(cmd *cobra.Command) (domain.Config, error) {
	path := flagConfigFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return domain.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("refresh-token") {
		cfg.RefreshToken = flagRefreshToken
	}
	if flags.Changed("account-id") {
		cfg.AccountID = flagAccountID
	}
	if flags.Changed("api-host") {
		cfg.APIHost = flagAPIHost
	}
	if flags.Changed("repo-id") {
		cfg.RepoID = flagRepoID
	}
	if flags.Changed("repo-name") {
		cfg.RepoName = flagRepoName
	}
	if flags.Changed("namespace") {
		ns, err := domain.ParseNamespace(flagNamespace)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Namespace = ns
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if flags.Changed("poll-interval") {
		cfg.PollInterval = flagPollInterval
	}
	if flags.Changed("max-poll-wait") {
		cfg.MaxPollWait = flagMaxPollWait
	}
	return cfg, nil
}
