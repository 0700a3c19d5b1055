package repository_test

import (
	"errors"
	"testing"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKeyError(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()

	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base:           entity.Base{ID: "abcd1234"},
		Username:       "alice",
		ProviderName:   "github",
		ProviderUserID: "1",
	}))

	err := userRepo.Create(ctx, &entity.User{
		Base:           entity.Base{ID: "abcd1234"},
		Username:       "bob",
		ProviderName:   "github",
		ProviderUserID: "2",
	})
	require.Error(t, err)
	require.True(t, repository.IsDuplicateKeyError(err))

	require.False(t, repository.IsDuplicateKeyError(nil))
	require.False(t, repository.IsDuplicateKeyError(errors.New("connection reset")))
}
