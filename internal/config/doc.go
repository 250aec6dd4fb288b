// Package config loads runtime configuration for the seabook CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-l string   log level: debug, info, warn, error
//	-m string   address for the Prometheus /metrics endpoint (empty disables it)
//
// # JSON schema
//
//	{
//	  "database_path": "seabook.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_backend": "slog",
//	  "metrics_addr": "127.0.0.1:9464"
//	}
//
// Keys missing from the file keep their earlier value. The merged result is
// validated: level, format and backend must be known values and the metrics
// address, when set, must be host:port.
package config
