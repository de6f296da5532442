package migrations

import "embed"

// Files holds the numbered schema files applied by db.OpenSQLite.
//
//go:embed 0*.sql
var Files embed.FS
