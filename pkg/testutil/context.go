package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pastevault/backend/config"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/logger"
	"github.com/pastevault/backend/pkg/session"
	"github.com/pastevault/backend/pkg/token"
	"github.com/pastevault/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env:       "test",
		ClientURL: "http://localhost:3000",
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "auth_session",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: config.TokenConfigs{
				Name:       "pastevault",
				Expiration: 30 * 24 * time.Hour,
			},
			Registration: config.TokenConfigs{
				Name:       "pastevault-registration",
				Expiration: time.Hour,
			},
		},
		File: config.FileConfigs{
			MaxSize:      2 << 20,
			AvatarBucket: "avatars",
		},
	}
}

// MockContext returns a context carrying everything a domain needs, backed
// by an in-memory database with the schema migrated.
func MockContext(t *testing.T) context.Context {
	cfg := MockConfigs()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithTokenEngine(ctx, token.NewEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx,
		session.NewStore(cfg.Session.Name, []byte(cfg.Session.Secret)))
	ctx = xcontext.WithResponseHolder(ctx)

	require.NoError(t, entity.MigrateTable(ctx))
	return ctx
}
