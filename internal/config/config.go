// Package config loads the SDK's static configuration: the chain registry
// extension list, default token key, and logging level for the CLI tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"zkpay-sdk/internal/utils"
)

// Config is the top-level configuration structure.
type Config struct {
	// Chains extends (or overrides) the built-in SLIP-44 chain registry.
	Chains []utils.ChainInfo `yaml:"chains"`

	// DefaultTokenKey is used when a caller supplies no token key.
	DefaultTokenKey string `yaml:"default_token_key"`

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DefaultTokenKey: "USDT",
		LogLevel:        "info",
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// The ZKPAY_SDK_CONFIG environment variable overrides the path when set.
func Load(path string) (*Config, error) {
	if env := os.Getenv("ZKPAY_SDK_CONFIG"); env != "" {
		path = env
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultTokenKey == "" {
		cfg.DefaultTokenKey = "USDT"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// ChainRegistry builds the effective registry: built-in chains plus any
// configured extensions.
func (c *Config) ChainRegistry() *utils.ChainRegistry {
	if len(c.Chains) == 0 {
		return utils.DefaultChainRegistry
	}
	return utils.NewChainRegistry(append(utils.DefaultChains(), c.Chains...))
}
