package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()

	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultMaxPollWait, cfg.MaxPollWait)
	assert.Equal(t, NamespacePrimary, cfg.Namespace)
}

func TestConfig_WithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Namespace:    NamespaceAlternate,
		PollInterval: time.Second,
		MaxPollWait:  time.Minute,
	}.WithDefaults()

	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.MaxPollWait)
	assert.Equal(t, NamespaceAlternate, cfg.Namespace)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		RefreshToken: "rt-1",
		APIHost:      "api.example.com",
	}.WithDefaults()
	require.NoError(t, valid.Validate())

	missingToken := valid
	missingToken.RefreshToken = ""
	assert.ErrorIs(t, missingToken.Validate(), ErrMissingCredential)

	missingHost := valid
	missingHost.APIHost = ""
	assert.Error(t, missingHost.Validate())

	badNamespace := valid
	badNamespace.Namespace = "staging"
	assert.Error(t, badNamespace.Validate())
}

func TestParseNamespace(t *testing.T) {
	ns, err := ParseNamespace("alternate")
	require.NoError(t, err)
	assert.Equal(t, NamespaceAlternate, ns)

	ns, err = ParseNamespace("")
	require.NoError(t, err)
	assert.Equal(t, NamespacePrimary, ns)

	_, err = ParseNamespace("tertiary")
	assert.Error(t, err)
}
