// Package migrations embeds the goose SQL migrations of the local store.
package migrations

import "embed"

// Migrations holds the *.sql files applied by goose at startup.
//
//go:embed *.sql
var Migrations embed.FS
