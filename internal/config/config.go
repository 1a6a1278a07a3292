package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the resolved sitefleet configuration.
type Config struct {
	// APIBase is the root URL of the site-management API.
	APIBase string `koanf:"api_base" validate:"required,url"`

	// Token is the bearer token used for every API call. There is no
	// login flow here; operators provision the token out of band.
	Token string `koanf:"token"`

	// ExcludedDomains lists URL substrings identifying staging and
	// development hosts. Sites matching any entry are dropped from
	// fleet-wide operations.
	ExcludedDomains []string `koanf:"excluded_domains"`

	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `koanf:"timeout" validate:"min=1,max=600"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"api_base": "https://public-api.wordpress.com",
		"excluded_domains": []string{
			"mystagingwebsite.com",
			"go-vip.co",
			"wpcomstaging.com",
			"jurassic.ninja",
		},
		"timeout": 30,
	}
}

// Path returns the location of the config file, honoring
// SITEFLEET_CONFIG_FILE when set.
func Path() (string, error) {
	if p := os.Getenv("SITEFLEET_CONFIG_FILE"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".sitefleet", "config.json"), nil
}

// Load resolves configuration from defaults, the config file, and
// SITEFLEET_* environment variables, in increasing priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("SITEFLEET_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: SITEFLEET_API_BASE -> api_base
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SITEFLEET_"))
}
