package migrations

import "embed"

// MigrationsFS embeds all SQL migrations for goose.
//
//go:embed *.sql
var MigrationsFS embed.FS
