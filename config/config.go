// Package config loads console client configuration from file and environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all console client configuration
type Config struct {
	API   APIConfig
	State StateConfig
	Poll  PollConfig
	Log   LogConfig
}

// APIConfig holds settings for the upstream REST API
type APIConfig struct {
	BaseURL        string        // e.g. https://erp.example.com
	Prefix         string        // API version prefix, default /api/v1
	RequestTimeout time.Duration // per-request timeout, 0 = no timeout
	UserAgent      string
}

// StateConfig holds settings for the local persistent state store
type StateConfig struct {
	Path string // path to the sqlite state file
}

// PollConfig holds background polling settings
type PollConfig struct {
	UnreadInterval    time.Duration // unread-notification count poll interval
	UnreadMaxRetries  int           // bounded retries per poll tick
	BroadcastInterval time.Duration // broadcast banner check interval
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with CONSOLE_ prefix (e.g. CONSOLE_API_BASE_URL)
// 2. console.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("console")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/erp-console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		API: APIConfig{
			BaseURL:        v.GetString("api.base_url"),
			Prefix:         v.GetString("api.prefix"),
			RequestTimeout: v.GetDuration("api.request_timeout"),
			UserAgent:      v.GetString("api.user_agent"),
		},
		State: StateConfig{
			Path: v.GetString("state.path"),
		},
		Poll: PollConfig{
			UnreadInterval:    v.GetDuration("poll.unread_interval"),
			UnreadMaxRetries:  v.GetInt("poll.unread_max_retries"),
			BroadcastInterval: v.GetDuration("poll.broadcast_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.prefix", "/api/v1")
	v.SetDefault("api.request_timeout", 30*time.Second)
	v.SetDefault("api.user_agent", "erp-console/1.0")
	v.SetDefault("state.path", "console-state.db")
	v.SetDefault("poll.unread_interval", 30*time.Second)
	v.SetDefault("poll.unread_max_retries", 3)
	v.SetDefault("poll.broadcast_interval", 60*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if !strings.HasPrefix(c.API.Prefix, "/") {
		return fmt.Errorf("api.prefix must start with '/'")
	}
	if c.Poll.UnreadMaxRetries < 0 {
		return fmt.Errorf("poll.unread_max_retries cannot be negative")
	}
	return nil
}

// Endpoint joins the base URL, prefix and path into a full request URL
func (c *APIConfig) Endpoint(path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + c.Prefix + path
}
