package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seabook.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "seabook.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Empty(t, c.MetricsAddr)
}

func TestLoad(t *testing.T) {
	file := writeConfig(t, `{"database_path": "/data/file.db", "log_backend": "zap", "metrics_addr": ":9464"}`)

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{name: "no args", args: nil, expected: defaults()},
		{
			name: "flags only",
			args: []string{"-d", "/tmp/a.db", "-l", "debug"},
			expected: &Config{DatabasePath: "/tmp/a.db", LogLevel: "debug", LogFormat: "text",
				LogBackend: "slog"},
		},
		{
			name: "file only",
			args: []string{"-c", file},
			expected: &Config{DatabasePath: "/data/file.db", LogLevel: "info", LogFormat: "text",
				LogBackend: "zap", MetricsAddr: ":9464"},
		},
		{
			name: "flags override file",
			args: []string{"-config", file, "-d", "/tmp/b.db", "-m", ""},
			expected: &Config{DatabasePath: "/tmp/b.db", LogLevel: "info", LogFormat: "text",
				LogBackend: "zap", MetricsAddr: ""},
		},
		{
			name:     "unknown arguments ignored",
			args:     []string{"-x", "1", "positional"},
			expected: defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoad_NormalizesAndValidates(t *testing.T) {
	cfg, err := Load([]string{"-l", "WARN", "-m", "127.0.0.1:9464"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	tests := []struct {
		name string
		args []string
		file string
	}{
		{name: "bad level", args: []string{"-l", "loud"}},
		{name: "empty database", args: []string{"-d", ""}},
		{name: "bad metrics address", args: []string{"-m", "not an address"}},
		{name: "bad backend", file: `{"log_backend": "syslog"}`},
		{name: "bad format", file: `{"log_format": "xml"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.file != "" {
				args = append(args, "-c", writeConfig(t, tt.file))
			}
			_, err := Load(args)
			require.Error(t, err)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	bad := writeConfig(t, `{ this is not valid json`)

	_, err := Load([]string{"-c", bad})
	require.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}
