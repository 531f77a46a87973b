// Package migrations embeds the per-dialect SQL migration ledger.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
