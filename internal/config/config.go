package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the seabook CLI.
type Config struct {
	DatabasePath string `validate:"required"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	LogFormat    string `validate:"oneof=text json"`
	LogBackend   string `validate:"oneof=slog zap"`
	MetricsAddr  string `validate:"omitempty,hostname_port"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "seabook.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
	c.MetricsAddr = ""
}

// Validate normalizes enum-like fields to lower case and checks every field.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.LogBackend = strings.ToLower(strings.TrimSpace(c.LogBackend))
	return validator.New().Struct(c)
}

// Load builds a Config from defaults, the JSON file named in args (if any)
// and the flags in args. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
