// Package config handles Caravel configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/caravel-ai/caravel/internal/errors"
)

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".caravel")

	return &Config{
		Provider: ProviderConfig{
			Name:           "openrouter",
			BaseURL:        "https://openrouter.ai/api/v1",
			Model:          "anthropic/claude-3.5-sonnet",
			TimeoutSeconds: 15,
		},
		Router: RouterConfig{
			RecentTurns: 6,
		},
		Approval: ApprovalConfig{
			TTLSeconds: 0,
		},
		Catalog: CatalogConfig{
			Path:        filepath.Join(dataDir, "catalog.db"),
			SeedOnStart: true,
		},
		Paths: PathsConfig{
			DataDir: dataDir,
			LogFile: filepath.Join(dataDir, "caravel.log"),
		},
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid,
			"could not read config file", apperrors.CategorySystem)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid,
			"could not parse config file", apperrors.CategoryUser)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

func (c *Config) validate() error {
	if c.Provider.TimeoutSeconds < 0 {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"provider.timeout_seconds must not be negative", apperrors.CategoryUser)
	}
	if c.Approval.TTLSeconds < 0 {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"approval.ttl_seconds must not be negative", apperrors.CategoryUser)
	}
	return nil
}
