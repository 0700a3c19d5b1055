package entity

import (
	"context"

	"github.com/pastevault/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&AccessToken{},
		&ActionLog{},
	)
}
