package domain

import (
	"context"
	"errors"
	"time"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// timeNow is swapped out by tests that need expired tokens.
var timeNow = time.Now

type AccessTokenDomain interface {
	Generate(ctx context.Context, req *model.GenerateAccessTokenRequest) (*model.GenerateAccessTokenResponse, error)
	GetList(ctx context.Context, req *model.GetAccessTokensRequest) (*model.GetAccessTokensResponse, error)
	Delete(ctx context.Context, req *model.DeleteAccessTokenRequest) (*model.DeleteAccessTokenResponse, error)
}

type accessTokenDomain struct {
	accessTokenRepo repository.AccessTokenRepository
	actionLogRepo   repository.ActionLogRepository
}

func NewAccessTokenDomain(
	accessTokenRepo repository.AccessTokenRepository,
	actionLogRepo repository.ActionLogRepository,
) AccessTokenDomain {
	return &accessTokenDomain{
		accessTokenRepo: accessTokenRepo,
		actionLogRepo:   actionLogRepo,
	}
}

func (d *accessTokenDomain) Generate(
	ctx context.Context, req *model.GenerateAccessTokenRequest,
) (*model.GenerateAccessTokenResponse, error) {
	if len(req.Scopes) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Requested no scope")
	}

	for _, scope := range req.Scopes {
		if !entity.IsValidScope(scope) {
			return nil, errorx.New(errorx.BadRequest, "Invalid scope %s", scope)
		}
	}

	expiresAt, err := req.ExpiresIn.Time(timeNow())
	if err != nil {
		return nil, err
	}

	id, token, err := common.IssueAccessToken(
		ctx, d.accessTokenRepo, d.actionLogRepo,
		xcontext.RequestUserID(ctx), req.Scopes,
		expiresAt, false, req.Description,
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot issue the access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GenerateAccessTokenResponse{ID: id, Token: token}, nil
}

func (d *accessTokenDomain) GetList(
	ctx context.Context, req *model.GetAccessTokensRequest,
) (*model.GetAccessTokensResponse, error) {
	tokens, err := d.accessTokenRepo.GetAllVisibleByOwnerID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the access tokens: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.AccessToken{}
	for _, token := range tokens {
		result = append(result, model.ConvertAccessToken(token))
	}

	return &model.GetAccessTokensResponse{AccessTokens: result}, nil
}

func (d *accessTokenDomain) Delete(
	ctx context.Context, req *model.DeleteAccessTokenRequest,
) (*model.DeleteAccessTokenResponse, error) {
	record, err := d.accessTokenRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found access token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the access token: %v", err)
		return nil, errorx.Unknown
	}

	// Someone else's token looks exactly like a missing one.
	if record.OwnerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found access token")
	}

	if err := d.accessTokenRepo.DeleteByID(ctx, record.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the access token: %v", err)
		return nil, errorx.Unknown
	}

	err = d.actionLogRepo.Create(ctx, &entity.ActionLog{
		UserID: record.OwnerID,
		Type:   entity.ActionAccessTokenDeleted,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot log the token deletion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteAccessTokenResponse{}, nil
}
