package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/xcontext"
)

type ActionLogRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	GetAllByUserID(ctx context.Context, userID string) ([]entity.ActionLog, error)
}

type actionLogRepository struct{}

func NewActionLogRepository() *actionLogRepository {
	return &actionLogRepository{}
}

func (r *actionLogRepository) Create(ctx context.Context, log *entity.ActionLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	return xcontext.DB(ctx).Create(log).Error
}

func (r *actionLogRepository) GetAllByUserID(
	ctx context.Context, userID string,
) ([]entity.ActionLog, error) {
	var result []entity.ActionLog
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
