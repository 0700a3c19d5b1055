package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/middleware"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/testutil"
	"github.com/pastevault/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func issueToken(t *testing.T, ctx context.Context, scopes []string) string {
	user := testutil.CreateUser(t, ctx, "alice")

	_, token, err := common.IssueAccessToken(
		ctx, repository.NewAccessTokenRepository(), repository.NewActionLogRepository(),
		user.ID, scopes, time.Now().Add(time.Hour), false, "",
	)
	require.NoError(t, err)
	return token
}

func bearerContext(ctx context.Context, token string) context.Context {
	req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return xcontext.WithHTTPRequest(ctx, req)
}

func TestAuthVerifier(t *testing.T) {
	ctx := testutil.MockContext(t)
	token := issueToken(t, ctx, []string{entity.ScopeUserRead})
	ctx = bearerContext(ctx, token)

	verifier := middleware.NewAuthVerifier(repository.NewAccessTokenRepository()).
		WithScopes(entity.ScopeUser, entity.ScopeUserRead)

	newCtx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, xcontext.RequestUserID(newCtx))
	require.Equal(t, []string{entity.ScopeUserRead}, xcontext.RequestScopes(newCtx))
}

func TestAuthVerifierNoToken(t *testing.T) {
	ctx := bearerContext(testutil.MockContext(t), "")

	verifier := middleware.NewAuthVerifier(repository.NewAccessTokenRepository()).
		WithScopes(entity.ScopeUser)

	_, err := verifier.Middleware()(ctx)

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.Unauthenticated, xerr.Code)
}

func TestAuthVerifierInvalidToken(t *testing.T) {
	ctx := bearerContext(testutil.MockContext(t), "unknown1-secret")

	verifier := middleware.NewAuthVerifier(repository.NewAccessTokenRepository()).
		WithScopes(entity.ScopeUser)

	_, err := verifier.Middleware()(ctx)
	require.ErrorIs(t, err, common.ErrInvalidAccessToken)
}

func TestAuthVerifierMissingScope(t *testing.T) {
	ctx := testutil.MockContext(t)
	token := issueToken(t, ctx, []string{entity.ScopePaste})
	ctx = bearerContext(ctx, token)

	verifier := middleware.NewAuthVerifier(repository.NewAccessTokenRepository()).
		WithScopes(entity.ScopeUserAccessTokens)

	_, err := verifier.Middleware()(ctx)

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.PermissionDenied, xerr.Code)
}
