package migration

import (
	"context"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/pkg/xcontext"
)

// migrate0000 creates the database with the first released schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.RefreshToken{},
		&entity.Campaign{},
		&entity.Application{},
		&entity.Notification{},
	)
}
