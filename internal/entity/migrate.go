package entity

import (
	"context"

	"github.com/kolstage/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&RefreshToken{},
		&Campaign{},
		&Application{},
		&Notification{},
	)
}
