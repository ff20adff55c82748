package migration

import "context"

// Migrators maps a version name to its migrator. When the auto migrator is
// called, no need to call other migrators.
var Migrators = map[string]func(ctx context.Context) error{
	"auto": AutoMigrate,
	"0000": migrate0000,
}
