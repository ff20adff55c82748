package migration

import (
	"context"

	"github.com/kolstage/backend/internal/entity"
)

func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
