// Package database embeds the schema migrations so the binaries do not
// depend on the working directory.
package database

import "embed"

// Migrations holds one directory per driver: migrations/postgres is applied
// with golang-migrate, migrations/oracle by the statement executor.
//
//go:embed migrations/postgres/*.sql migrations/oracle/*.sql
var Migrations embed.FS

const (
	PostgresDir = "migrations/postgres"
	OracleDir   = "migrations/oracle"
)
