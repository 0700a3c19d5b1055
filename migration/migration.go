package migration

import (
	"context"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	if err := entity.MigrateTable(ctx); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Migrated the database successfully")
	return nil
}
