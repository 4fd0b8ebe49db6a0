// Package config loads the gridmap YAML configuration: browser options,
// logging and the declarative table definitions the CLI reads.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/gridmap/pkg/browser"
)

const (
	// Default values for browser settings
	defaultHeadless    = true
	defaultTimeout     = 30 * time.Second
	defaultMaxSessions = browser.DefaultMaxSessions
	defaultIdleTimeout = 5 * time.Minute
)

// Config is the root of the configuration file.
type Config struct {
	Version string              `yaml:"version"`
	Browser BrowserConfig       `yaml:"browser"`
	Logging LoggingConfig       `yaml:"logging"`
	Tables  map[string]TableDef `yaml:"tables,omitempty"`
}

// BrowserConfig configures Playwright sessions.
type BrowserConfig struct {
	Headless    bool              `yaml:"headless"`
	Timeout     time.Duration     `yaml:"timeout"`
	Viewport    *browser.Viewport `yaml:"viewport,omitempty"`
	MaxSessions int               `yaml:"max_sessions"`
	IdleTimeout time.Duration     `yaml:"idle_timeout"`
}

// LoggingConfig configures where and how much the CLI logs.
type LoggingConfig struct {
	// File writes a session log under ~/.gridmap/logs instead of stderr
	File bool `yaml:"file"`

	// Debug enables engine debug output
	Debug bool `yaml:"debug"`
}

// Default returns a configuration with default settings and no tables.
func Default() *Config {
	return &Config{
		Version: currentVersion,
		Browser: BrowserConfig{
			Headless:    defaultHeadless,
			Timeout:     defaultTimeout,
			MaxSessions: defaultMaxSessions,
			IdleTimeout: defaultIdleTimeout,
		},
		Tables: make(map[string]TableDef),
	}
}

// Validate checks the browser settings and compiles every table definition.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Browser.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.TableNames() {
		if _, err := c.Tables[name].Schema(); err != nil {
			errs = append(errs, fmt.Errorf("table %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Table returns the definition of the named table.
func (c *Config) Table(name string) (TableDef, error) {
	def, ok := c.Tables[name]
	if !ok {
		return TableDef{}, fmt.Errorf("table %q is not defined", name)
	}
	return def, nil
}

// Validate checks the browser settings.
func (b BrowserConfig) Validate() error {
	if b.Timeout < 0 {
		return fmt.Errorf("browser timeout cannot be negative: %s", b.Timeout)
	}
	if b.IdleTimeout < 0 {
		return fmt.Errorf("browser idle_timeout cannot be negative: %s", b.IdleTimeout)
	}
	if b.MaxSessions < 1 {
		return fmt.Errorf("browser max_sessions must be at least 1, got %d", b.MaxSessions)
	}
	if b.Viewport != nil && (b.Viewport.Width <= 0 || b.Viewport.Height <= 0) {
		return fmt.Errorf("invalid browser viewport %dx%d", b.Viewport.Width, b.Viewport.Height)
	}
	return nil
}

// SessionOptions converts the settings into options for a new session.
func (b BrowserConfig) SessionOptions() browser.SessionOptions {
	return browser.SessionOptions{
		Headless: b.Headless,
		Viewport: b.Viewport,
		Timeout:  float64(b.Timeout.Milliseconds()),
	}
}
