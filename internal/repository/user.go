package repository

import (
	"context"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByProvider(ctx context.Context, providerName, providerUserID string) (*entity.User, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByUsername matches case-insensitively, so "Foo" and "foo" cannot
// coexist.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).
		Take(&result, "LOWER(username)=LOWER(?)", username).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByProvider(
	ctx context.Context, providerName, providerUserID string,
) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).
		Take(&result, "provider_name=? AND provider_user_id=?", providerName, providerUserID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
