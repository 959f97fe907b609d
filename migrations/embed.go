// Package migrations embeds the goose schema migrations, one directory per
// supported database driver.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
