package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/confsync/internal/core/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
refresh_token = "rt-file"
account_id = 7
api_host = "api.example.com"
namespace = "alternate"
verbose = true
poll_interval = "1s"
max_poll_wait = "30s"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "rt-file", cfg.RefreshToken)
	assert.Equal(t, int64(7), cfg.AccountID)
	assert.Equal(t, "api.example.com", cfg.APIHost)
	assert.Equal(t, domain.NamespaceAlternate, cfg.Namespace)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.MaxPollWait)
}

func TestLoad_BadPollDurationsInFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad poll interval", `poll_interval = "soon"`},
		{"bad max poll wait", `max_poll_wait = "later"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, domain.Config{}, cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "refresh_token = [broken")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_BadNamespaceInFile(t *testing.T) {
	path := writeConfigFile(t, `namespace = "staging"`)

	_, err := Load(path)

	assert.Error(t, err)
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	cfg := domain.Config{RefreshToken: "rt-file", APIHost: "file-host"}
	env := map[string]string{
		EnvRefreshToken: "rt-env",
		EnvAccountID:    "42",
		EnvRepoID:       "11",
		EnvNamespace:    "alternate",
		EnvVerbose:      "true",
		EnvPollInterval: "2s",
		EnvMaxPollWait:  "1m",
	}

	err := applyEnv(&cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	require.NoError(t, err)
	assert.Equal(t, "rt-env", cfg.RefreshToken)
	assert.Equal(t, "file-host", cfg.APIHost, "unset variables leave file values intact")
	assert.Equal(t, int64(42), cfg.AccountID)
	assert.Equal(t, int64(11), cfg.RepoID)
	assert.Equal(t, domain.NamespaceAlternate, cfg.Namespace)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.MaxPollWait)
}

func TestApplyEnv_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad account id", map[string]string{EnvAccountID: "not-a-number"}},
		{"bad repo id", map[string]string{EnvRepoID: "x"}},
		{"bad namespace", map[string]string{EnvNamespace: "staging"}},
		{"bad verbose", map[string]string{EnvVerbose: "maybe"}},
		{"bad poll interval", map[string]string{EnvPollInterval: "soon"}},
		{"bad max poll wait", map[string]string{EnvMaxPollWait: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg domain.Config
			err := applyEnv(&cfg, func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			assert.Error(t, err)
		})
	}
}
