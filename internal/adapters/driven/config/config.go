// Package config assembles the explicit run configuration from, in rising
// precedence, an optional TOML file, CONFSYNC_* environment variables and
// CLI flags (applied by the CLI itself). Core components never read the
// environment; they receive the finished domain.Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

// Environment variable names, the complete recognized set.
const (
	EnvRefreshToken = "CONFSYNC_REFRESH_TOKEN"
	EnvAccountID    = "CONFSYNC_ACCOUNT_ID"
	EnvAPIHost      = "CONFSYNC_API_HOST"
	EnvRepoID       = "CONFSYNC_REPO_ID"
	EnvRepoName     = "CONFSYNC_REPO_NAME"
	EnvNamespace    = "CONFSYNC_NAMESPACE"
	EnvVerbose      = "CONFSYNC_VERBOSE"
	EnvPollInterval = "CONFSYNC_POLL_INTERVAL"
	EnvMaxPollWait  = "CONFSYNC_MAX_POLL_WAIT"
)

// fileConfig mirrors the recognized keys of ~/.confsync/config.toml.
type fileConfig struct {
	RefreshToken string `toml:"refresh_token"`
	AccountID    int64  `toml:"account_id"`
	APIHost      string `toml:"api_host"`
	RepoID       int64  `toml:"repo_id"`
	RepoName     string `toml:"repo_name"`
	Namespace    string `toml:"namespace"`
	Verbose      bool   `toml:"verbose"`
	PollInterval string `toml:"poll_interval"`
	MaxPollWait  string `toml:"max_poll_wait"`
}

// DefaultPath returns ~/.confsync/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".confsync", "config.toml"), nil
}

// Load reads the config file at path (a missing file is not an error) and
// overlays the environment.
func Load(path string) (domain.Config, error) {
	var cfg domain.Config

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return domain.Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *domain.Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.RefreshToken = fc.RefreshToken
	cfg.AccountID = fc.AccountID
	cfg.APIHost = fc.APIHost
	cfg.RepoID = fc.RepoID
	cfg.RepoName = fc.RepoName
	cfg.Verbose = fc.Verbose
	if fc.Namespace != "" {
		ns, err := domain.ParseNamespace(fc.Namespace)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Namespace = ns
	}
	if fc.PollInterval != "" {
		d, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return fmt.Errorf("config file poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if fc.MaxPollWait != "" {
		d, err := time.ParseDuration(fc.MaxPollWait)
		if err != nil {
			return fmt.Errorf("config file max_poll_wait: %w", err)
		}
		cfg.MaxPollWait = d
	}
	return nil
}

// applyEnv overlays environment variables onto cfg. lookup is os.LookupEnv
// in production and a map lookup in tests.
func applyEnv(cfg *domain.Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRefreshToken); ok {
		cfg.RefreshToken = v
	}
	if v, ok := lookup(EnvAPIHost); ok {
		cfg.APIHost = v
	}
	if v, ok := lookup(EnvRepoName); ok {
		cfg.RepoName = v
	}
	if v, ok := lookup(EnvAccountID); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccountID, err)
		}
		cfg.AccountID = id
	}
	if v, ok := lookup(EnvRepoID); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRepoID, err)
		}
		cfg.RepoID = id
	}
	if v, ok := lookup(EnvNamespace); ok {
		ns, err := domain.ParseNamespace(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNamespace, err)
		}
		cfg.Namespace = ns
	}
	if v, ok := lookup(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}
	if v, ok := lookup(EnvPollInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPollInterval, err)
		}
		cfg.PollInterval = d
	}
	if v, ok := lookup(EnvMaxPollWait); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxPollWait, err)
		}
		cfg.MaxPollWait = d
	}
	return nil
}
