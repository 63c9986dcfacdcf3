// Package config loads application configuration with multi-source
// priority:
//
//  1. Environment variables (SEGMENT_* — runtime override)
//  2. Config file (~/.segment-mcp/config.yaml)
//  3. Defaults
//
// Credentials are optional individually: the server starts with either
// one, and tools targeting a surface without a credential fail with a
// classified missing-credential error instead of at startup. Sensitive
// values are never logged.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidPublicAPIBaseURL indicates the Public API base URL
	// override does not parse as an absolute URL.
	ErrInvalidPublicAPIBaseURL = errors.New("invalid public API base URL")

	// ErrInvalidTrackingAPIBaseURL indicates the Tracking API base URL
	// override does not parse as an absolute URL.
	ErrInvalidTrackingAPIBaseURL = errors.New("invalid tracking API base URL")
)

// Config is the application configuration.
type Config struct {
	// PublicAPIToken authenticates Public (management) API requests.
	PublicAPIToken string `mapstructure:"public_api_token"`

	// WriteKey authenticates Tracking API requests.
	WriteKey string `mapstructure:"write_key"`

	// PublicAPIBaseURL and TrackingAPIBaseURL override the production
	// endpoints, for EU workspaces or proxies. Empty means default.
	PublicAPIBaseURL   string `mapstructure:"public_api_base_url"`
	TrackingAPIBaseURL string `mapstructure:"tracking_api_base_url"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogJSON switches log output from text to JSON.
	LogJSON bool `mapstructure:"log_json"`
}

// HasCredentials reports whether at least one API surface is usable.
func (c *Config) HasCredentials() bool {
	return c.PublicAPIToken != "" || c.WriteKey != ""
}

// Validate checks the base URL overrides. Credentials are not required
// here; per-call classification handles their absence.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.PublicAPIBaseURL); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPublicAPIBaseURL, c.PublicAPIBaseURL)
	}
	if err := validateBaseURL(c.TrackingAPIBaseURL); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTrackingAPIBaseURL, c.TrackingAPIBaseURL)
	}
	return nil
}

func validateBaseURL(base string) error {
	if base == "" {
		return nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// Load reads configuration from environment, config file, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("public_api_token", "")
	v.SetDefault("write_key", "")
	v.SetDefault("public_api_base_url", "")
	v.SetDefault("tracking_api_base_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetEnvPrefix("SEGMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".segment-mcp"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
