package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/seabook/internal/flagx"
)

// parseFlags applies -d, -l and -m. Other arguments, including -c, are
// filtered out first so they do not trip the flag set.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("seabook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	return fs.Parse(flagx.FilterArgs(args, []string{"-d", "-l", "-m"}))
}
