// Package migrations embeds the catalog service's SQL migrations.
package migrations

import "embed"

// FS holds the .up.sql files applied at startup, ordered by file name.
//
//go:embed *.sql
var FS embed.FS
