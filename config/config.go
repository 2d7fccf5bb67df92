// Package config loads Lumen SDK configuration from TOML files and
// environment variables. File precedence, lowest to highest: system
// config, user config, project config, then LUMEN_* environment
// variables on top.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/lumenhq/lumen-go/client"
	"github.com/lumenhq/lumen-go/errors"
)

// Config represents the full Lumen SDK configuration
type Config struct {
	Tenant      TenantConfig      `mapstructure:"tenant"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Batch       BatchConfig       `mapstructure:"batch"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
	Log         LogConfig         `mapstructure:"log"`
}

// TenantConfig identifies the Lumen tenant to talk to
type TenantConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// HTTPConfig tunes the HTTP layer
type HTTPConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	MaxRetries        int     `mapstructure:"max_retries"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// BatchConfig tunes bulk loading
type BatchConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// SuggestionsConfig tunes suggestion fetching and application
type SuggestionsConfig struct {
	MaxSuggestions int  `mapstructure:"max_suggestions"`
	AllowMultiple  bool `mapstructure:"allow_multiple"`
}

// LogConfig configures console output
type LogConfig struct {
	JSON      bool   `mapstructure:"json"`
	Theme     string `mapstructure:"theme"` // gruvbox, everforest
	Verbosity int    `mapstructure:"verbosity"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tenant.base_url", "")
	v.SetDefault("tenant.api_key", "")

	v.SetDefault("http.timeout_seconds", 120)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.requests_per_second", 10)

	v.SetDefault("batch.max_size", 20)

	v.SetDefault("suggestions.max_suggestions", 5)
	v.SetDefault("suggestions.allow_multiple", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.verbosity", 0)
}

// Validate checks the configuration is usable for API calls
func (c *Config) Validate() error {
	if c.Tenant.BaseURL == "" {
		return errors.NewInvalidRequestError("tenant.base_url is required")
	}
	if c.Tenant.APIKey == "" {
		return errors.NewInvalidRequestError("tenant.api_key is required")
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return errors.NewInvalidRequestError("http.timeout_seconds must not be negative")
	}
	if c.Batch.MaxSize < 0 {
		return errors.NewInvalidRequestError("batch.max_size must not be negative")
	}
	return nil
}

// ClientConfig translates the configuration into a tenant client config
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:           c.Tenant.BaseURL,
		APIKey:            c.Tenant.APIKey,
		Timeout:           time.Duration(c.HTTP.TimeoutSeconds) * time.Second,
		MaxRetries:        c.HTTP.MaxRetries,
		RequestsPerSecond: c.HTTP.RequestsPerSecond,
	}
}
