// Package migrations embeds the SQL migrations for the record store.
// Each supported dialect keeps its scripts in its own subdirectory.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
