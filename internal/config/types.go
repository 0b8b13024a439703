// Package config provides configuration types for Caravel.
package config

// Config represents the main Caravel configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Router   RouterConfig   `toml:"router"`
	Approval ApprovalConfig `toml:"approval"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Paths    PathsConfig    `toml:"paths"`
}

// ProviderConfig configures the classifier provider.
type ProviderConfig struct {
	Name           string `toml:"name"` // openrouter
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// RouterConfig contains router-level settings.
type RouterConfig struct {
	RecentTurns int `toml:"recent_turns"`
}

// ApprovalConfig contains approval ledger settings.
type ApprovalConfig struct {
	// TTLSeconds bounds how long a proposal stays pending. Zero
	// disables expiry.
	TTLSeconds int `toml:"ttl_seconds"`
}

// CatalogConfig contains catalog store settings.
type CatalogConfig struct {
	Path        string `toml:"path"`
	SeedOnStart bool   `toml:"seed_on_start"`
}

// PathsConfig contains file path settings.
type PathsConfig struct {
	DataDir string `toml:"data_dir"`
	LogFile string `toml:"log_file"`
}
