package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/domain"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/testutil"
	"github.com/pastevault/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newAccessTokenDomain() domain.AccessTokenDomain {
	return domain.NewAccessTokenDomain(
		repository.NewAccessTokenRepository(),
		repository.NewActionLogRepository(),
	)
}

func asUser(t *testing.T, ctx context.Context, username string) context.Context {
	user := testutil.CreateUser(t, ctx, username)
	return xcontext.WithRequestUserID(ctx, user.ID)
}

func TestGenerateAccessToken(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	resp, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		Scopes:      []string{entity.ScopePaste, entity.ScopeUserRead},
		ExpiresIn:   model.ExpiresOneWeek,
		Description: "ci script",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	record, err := common.VerifyAccessToken(
		ctx, repository.NewAccessTokenRepository(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.ID, record.ID)
	require.False(t, record.Hidden)
	require.Equal(t, "ci script", record.Description)
	require.ElementsMatch(t,
		[]string{entity.ScopePaste, entity.ScopeUserRead}, []string(record.Scopes))
}

func TestGenerateAccessTokenInvalidScope(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	_, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		Scopes:    []string{"admin"},
		ExpiresIn: model.ExpiresOneWeek,
	})

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.BadRequest, xerr.Code)
}

func TestGenerateAccessTokenNoScope(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	_, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		ExpiresIn: model.ExpiresOneWeek,
	})

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.BadRequest, xerr.Code)
}

func TestGenerateAccessTokenInvalidExpiration(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	_, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		Scopes:    []string{entity.ScopePaste},
		ExpiresIn: "2h",
	})

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.BadRequest, xerr.Code)
}

func TestGetAccessTokensExcludesHidden(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	_, _, err := common.IssueAccessToken(
		ctx, repository.NewAccessTokenRepository(), repository.NewActionLogRepository(),
		xcontext.RequestUserID(ctx), []string{entity.ScopeUser},
		time.Now().Add(time.Hour), true, "login",
	)
	require.NoError(t, err)

	visible, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		Scopes:    []string{entity.ScopePaste},
		ExpiresIn: model.ExpiresOneDay,
	})
	require.NoError(t, err)

	resp, err := tokenDomain.GetList(ctx, &model.GetAccessTokensRequest{})
	require.NoError(t, err)
	require.Len(t, resp.AccessTokens, 1)
	require.Equal(t, visible.ID, resp.AccessTokens[0].ID)
}

func TestGetAccessTokensEmptyForLoginOnlyUser(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")

	_, _, err := common.IssueAccessToken(
		ctx, repository.NewAccessTokenRepository(), repository.NewActionLogRepository(),
		xcontext.RequestUserID(ctx), []string{entity.ScopeUser},
		time.Now().Add(time.Hour), true, "login",
	)
	require.NoError(t, err)

	resp, err := newAccessTokenDomain().GetList(ctx, &model.GetAccessTokensRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.AccessTokens)
}

func TestDeleteAccessToken(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")
	tokenDomain := newAccessTokenDomain()

	generated, err := tokenDomain.Generate(ctx, &model.GenerateAccessTokenRequest{
		Scopes:    []string{entity.ScopePaste},
		ExpiresIn: model.ExpiresOneDay,
	})
	require.NoError(t, err)

	_, err = tokenDomain.Delete(ctx, &model.DeleteAccessTokenRequest{ID: generated.ID})
	require.NoError(t, err)

	_, err = common.VerifyAccessToken(
		ctx, repository.NewAccessTokenRepository(), generated.Token)
	require.ErrorIs(t, err, common.ErrInvalidAccessToken)
}

func TestDeleteAccessTokenNotOwned(t *testing.T) {
	ctx := testutil.MockContext(t)
	aliceCtx := asUser(t, ctx, "alice")
	bobCtx := asUser(t, ctx, "bob")
	tokenDomain := newAccessTokenDomain()

	generated, err := tokenDomain.Generate(aliceCtx, &model.GenerateAccessTokenRequest{
		Scopes:    []string{entity.ScopePaste},
		ExpiresIn: model.ExpiresOneDay,
	})
	require.NoError(t, err)

	_, err = tokenDomain.Delete(bobCtx, &model.DeleteAccessTokenRequest{ID: generated.ID})

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.NotFound, xerr.Code)
}

func TestDeleteAccessTokenUnknown(t *testing.T) {
	ctx := asUser(t, testutil.MockContext(t), "alice")

	_, err := newAccessTokenDomain().Delete(ctx, &model.DeleteAccessTokenRequest{ID: "missing1"})

	var xerr errorx.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, errorx.NotFound, xerr.Code)
}
