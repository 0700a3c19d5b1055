package common_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/crypto"
	"github.com/pastevault/backend/pkg/testutil"
	"github.com/pastevault/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIssueAndVerifyAccessToken(t *testing.T) {
	ctx := testutil.MockContext(t)
	accessTokenRepo := repository.NewAccessTokenRepository()
	actionLogRepo := repository.NewActionLogRepository()
	user := testutil.CreateUser(t, ctx, "alice")

	id, token, err := common.IssueAccessToken(
		ctx, accessTokenRepo, actionLogRepo,
		user.ID, []string{entity.ScopePaste},
		time.Now().Add(time.Hour), false, "ci script",
	)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, id+"-"))

	record, err := common.VerifyAccessToken(ctx, accessTokenRepo, token)
	require.NoError(t, err)
	require.Equal(t, id, record.ID)
	require.Equal(t, user.ID, record.OwnerID)
	require.Equal(t, []string{entity.ScopePaste}, []string(record.Scopes))
}

func TestIssueAccessTokenStoresOnlyHash(t *testing.T) {
	ctx := testutil.MockContext(t)
	accessTokenRepo := repository.NewAccessTokenRepository()
	user := testutil.CreateUser(t, ctx, "alice")

	id, token, err := common.IssueAccessToken(
		ctx, accessTokenRepo, repository.NewActionLogRepository(),
		user.ID, []string{entity.ScopePaste},
		time.Now().Add(time.Hour), false, "",
	)
	require.NoError(t, err)

	_, secret, _ := strings.Cut(token, "-")
	record, err := accessTokenRepo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, secret, record.TokenHash)
	require.Equal(t, crypto.SHA512([]byte(secret)), record.TokenHash)
}

type racingAccessTokenRepo struct {
	repository.AccessTokenRepository
	failures int
}

func (r *racingAccessTokenRepo) Create(ctx context.Context, token *entity.AccessToken) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("UNIQUE constraint failed: access_tokens.id")
	}

	return r.AccessTokenRepository.Create(ctx, token)
}

func TestIssueAccessTokenRetriesOnInsertRace(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := &racingAccessTokenRepo{
		AccessTokenRepository: repository.NewAccessTokenRepository(),
		failures:              1,
	}
	user := testutil.CreateUser(t, ctx, "alice")

	id, token, err := common.IssueAccessToken(
		ctx, repo, repository.NewActionLogRepository(),
		user.ID, []string{entity.ScopePaste},
		time.Now().Add(time.Hour), false, "",
	)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := common.VerifyAccessToken(ctx, repo, token)
	require.NoError(t, err)
	require.Equal(t, id, record.ID)
}

func TestIssueAccessTokenGivesUpAfterRepeatedRaces(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := &racingAccessTokenRepo{
		AccessTokenRepository: repository.NewAccessTokenRepository(),
		failures:              100,
	}
	user := testutil.CreateUser(t, ctx, "alice")

	_, _, err := common.IssueAccessToken(
		ctx, repo, repository.NewActionLogRepository(),
		user.ID, []string{entity.ScopePaste},
		time.Now().Add(time.Hour), false, "",
	)
	require.Error(t, err)
}

func TestVerifyAccessTokenTamperedSecret(t *testing.T) {
	ctx := testutil.MockContext(t)
	accessTokenRepo := repository.NewAccessTokenRepository()
	user := testutil.CreateUser(t, ctx, "alice")

	id, _, err := common.IssueAccessToken(
		ctx, accessTokenRepo, repository.NewActionLogRepository(),
		user.ID, []string{entity.ScopePaste},
		time.Now().Add(time.Hour), false, "",
	)
	require.NoError(t, err)

	_, err = common.VerifyAccessToken(ctx, accessTokenRepo, id+"-"+strings.Repeat("0", 64))
	require.ErrorIs(t, err, common.ErrInvalidAccessToken)
}

func TestVerifyAccessTokenMalformed(t *testing.T) {
	ctx := testutil.MockContext(t)
	accessTokenRepo := repository.NewAccessTokenRepository()

	for _, token := range []string{"", "nodash", "-secret", "id-"} {
		_, err := common.VerifyAccessToken(ctx, accessTokenRepo, token)
		require.ErrorIs(t, err, common.ErrInvalidAccessToken)
	}
}

func TestVerifyAccessTokenUnknownID(t *testing.T) {
	ctx := testutil.MockContext(t)

	_, err := common.VerifyAccessToken(
		ctx, repository.NewAccessTokenRepository(), "unknown1-secret")
	require.ErrorIs(t, err, common.ErrInvalidAccessToken)
}

func TestVerifyAccessTokenPurgesExpired(t *testing.T) {
	ctx := testutil.MockContext(t)
	accessTokenRepo := repository.NewAccessTokenRepository()
	user := testutil.CreateUser(t, ctx, "alice")

	secret := strings.Repeat("a", 64)
	require.NoError(t, accessTokenRepo.Create(ctx, &entity.AccessToken{
		Base:      entity.Base{ID: "expired1"},
		OwnerID:   user.ID,
		TokenHash: crypto.SHA512([]byte(secret)),
		Scopes:    []string{entity.ScopePaste},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := common.VerifyAccessToken(ctx, accessTokenRepo, "expired1-"+secret)
	require.ErrorIs(t, err, common.ErrInvalidAccessToken)

	// The expired record is gone after the first sighting.
	_, err = accessTokenRepo.GetByID(ctx, "expired1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResolveAccessTokenPrefersCookie(t *testing.T) {
	ctx := testutil.MockContext(t)
	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name

	req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	ctx = xcontext.WithHTTPRequest(ctx, req)

	token, ok := common.ResolveAccessToken(ctx)
	require.True(t, ok)
	require.Equal(t, "cookie-token", token)
}

func TestResolveAccessTokenFromHeader(t *testing.T) {
	ctx := testutil.MockContext(t)

	req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	ctx = xcontext.WithHTTPRequest(ctx, req)

	token, ok := common.ResolveAccessToken(ctx)
	require.True(t, ok)
	require.Equal(t, "header-token", token)
}

func TestResolveAccessTokenAbsent(t *testing.T) {
	ctx := testutil.MockContext(t)
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodGet, "/getMe", nil))

	_, ok := common.ResolveAccessToken(ctx)
	require.False(t, ok)
}
