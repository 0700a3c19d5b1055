package repository

import (
	"context"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/xcontext"
)

type AccessTokenRepository interface {
	Create(ctx context.Context, token *entity.AccessToken) error
	GetByID(ctx context.Context, id string) (*entity.AccessToken, error)
	GetAllVisibleByOwnerID(ctx context.Context, ownerID string) ([]entity.AccessToken, error)
	DeleteByID(ctx context.Context, id string) error
}

type accessTokenRepository struct{}

func NewAccessTokenRepository() *accessTokenRepository {
	return &accessTokenRepository{}
}

func (r *accessTokenRepository) Create(ctx context.Context, token *entity.AccessToken) error {
	return xcontext.DB(ctx).Create(token).Error
}

func (r *accessTokenRepository) GetByID(ctx context.Context, id string) (*entity.AccessToken, error) {
	var result entity.AccessToken
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetAllVisibleByOwnerID returns the owner's tokens except hidden ones, which
// only exist to back browser sessions.
func (r *accessTokenRepository) GetAllVisibleByOwnerID(
	ctx context.Context, ownerID string,
) ([]entity.AccessToken, error) {
	var result []entity.AccessToken
	err := xcontext.DB(ctx).
		Where("owner_id=? AND hidden=?", ownerID, false).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *accessTokenRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.AccessToken{}, "id=?", id).Error
}
