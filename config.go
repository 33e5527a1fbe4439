package chatmbti

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config errors.
var (
	ErrNoServer = errors.New("server URL is required")
	ErrTimeout  = errors.New("timeout must be positive")
)

// Config holds client settings loaded from flags, environment and an
// optional config file.
type Config struct {
	Server     string        `mapstructure:"server"`      // Base URL of the analysis service
	Timeout    time.Duration `mapstructure:"timeout"`     // Per-request timeout
	Locale     string        `mapstructure:"locale"`      // Built-in catalog tag: en or ko
	LocaleFile string        `mapstructure:"locale_file"` // Optional YAML catalog override
	Theme      string        `mapstructure:"theme"`       // dark or light
	Name       string        `mapstructure:"name"`        // Prefilled display name
	Plain      bool          `mapstructure:"plain"`       // Print panels once instead of running the TUI
	Verbose    bool          `mapstructure:"verbose"`
	LogFile    string        `mapstructure:"log_file"` // Log destination while the TUI owns the terminal
}

// Default config values.
const (
	DefaultServer  = "http://localhost:8000"
	DefaultTimeout = 120 * time.Second
	DefaultLocale  = "en"
	DefaultTheme   = "dark"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Server:  DefaultServer,
		Timeout: DefaultTimeout,
		Locale:  DefaultLocale,
		Theme:   DefaultTheme,
	}
}

// Validate checks that c can be used to reach the service.
func (c Config) Validate() error {
	if c.Server == "" {
		return ErrNoServer
	}
	u, err := url.Parse(c.Server)
	if err != nil {
		return fmt.Errorf("parse server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q: scheme must be http or https", c.Server)
	}
	if c.Timeout <= 0 {
		return ErrTimeout
	}
	return nil
}
