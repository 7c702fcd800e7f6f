// Package migrations embeds the SQL schema migrations shipped with the binary.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
