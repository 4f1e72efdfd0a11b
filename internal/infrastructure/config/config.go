// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for rulecore configuration.
	DefaultConfigDir = ".rulecore"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultCatalogFile is the default catalog database file name.
	DefaultCatalogFile = "catalog.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog,omitempty"`
	Rulesets RulesetsConfig `yaml:"rulesets,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
}

// CatalogConfig holds configuration for the SQLite catalog store.
type CatalogConfig struct {
	// Path is the file path to the catalog database.
	Path string `yaml:"path,omitempty"`
}

// RulesetsConfig holds configuration for locating ruleset documents.
type RulesetsConfig struct {
	// Dir is the directory installed ruleset documents live in.
	Dir string `yaml:"dir,omitempty"`
}

// LLMConfig holds configuration for the optional describe command.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Rulesets: RulesetsConfig{
			Dir: "rulesets",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}

// Load loads configuration from the .rulecore directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'rulecore init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = CatalogPath(basePath)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
}

// Save writes the config to the .rulecore directory in the given path,
// creating the directory if needed.
func Save(basePath string, cfg *Config) error {
	dir := ConfigDir(basePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ConfigDir returns the path to the .rulecore config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// CatalogPath returns the path to the catalog database.
func CatalogPath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultCatalogFile)
}

// Exists checks if a rulecore config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
