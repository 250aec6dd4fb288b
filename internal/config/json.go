package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/seabook/internal/flagx"
)

// fileConfig mirrors the JSON file. Pointer fields tell "absent" apart from
// an explicit empty string.
type fileConfig struct {
	DatabasePath *string `json:"database_path"`
	LogLevel     *string `json:"log_level"`
	LogFormat    *string `json:"log_format"`
	LogBackend   *string `json:"log_backend"`
	MetricsAddr  *string `json:"metrics_addr"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	overlay(&cfg.DatabasePath, fc.DatabasePath)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.LogFormat, fc.LogFormat)
	overlay(&cfg.LogBackend, fc.LogBackend)
	overlay(&cfg.MetricsAddr, fc.MetricsAddr)
	return nil
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
