package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/caravel-ai/caravel/internal/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.Provider.Name)
	assert.Equal(t, 15, cfg.Provider.TimeoutSeconds)
	assert.Empty(t, cfg.Provider.APIKey)
	assert.Equal(t, 6, cfg.Router.RecentTurns)
	assert.Zero(t, cfg.Approval.TTLSeconds)
	assert.True(t, cfg.Catalog.SeedOnStart)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[provider]
api_key = "sk-test"
timeout_seconds = 30

[approval]
ttl_seconds = 600

[catalog]
seed_on_start = false
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.Equal(t, 30, cfg.Provider.TimeoutSeconds)
	assert.Equal(t, 600, cfg.Approval.TTLSeconds)
	assert.False(t, cfg.Catalog.SeedOnStart)
	// Untouched sections keep their defaults.
	assert.Equal(t, "openrouter", cfg.Provider.Name)
	assert.Equal(t, 6, cfg.Router.RecentTurns)
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[provider`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestLoad_RejectsNegativeValues(t *testing.T) {
	cases := map[string]string{
		"timeout": "[provider]\ntimeout_seconds = -1\n",
		"ttl":     "[approval]\nttl_seconds = -5\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
		})
	}
}

func TestSave_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Provider.APIKey = "sk-roundtrip"
	cfg.Approval.TTLSeconds = 120
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
