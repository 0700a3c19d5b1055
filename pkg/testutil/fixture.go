package testutil

import (
	"context"
	"testing"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

// CreateUser inserts a user whose provider identity mirrors the username.
func CreateUser(t *testing.T, ctx context.Context, username string) *entity.User {
	user := &entity.User{
		Base:           entity.Base{ID: "user-" + username},
		Username:       username,
		ProviderName:   "github",
		ProviderUserID: "provider-" + username,
	}

	require.NoError(t, repository.NewUserRepository().Create(ctx, user))
	return user
}
