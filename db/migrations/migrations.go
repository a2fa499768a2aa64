package migrations

import "embed"

// FS embeds the SQL migrations of the campaign store. The golang-migrate
// iofs driver reads them from here.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects.
const Version = 1
