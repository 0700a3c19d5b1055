package model

import (
	"time"

	"github.com/pastevault/backend/internal/entity"
)

type User struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	AvatarURL string         `json:"avatarUrl"`
	Settings  map[string]any `json:"settings,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func ConvertUser(user entity.User) User {
	return User{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Settings:  user.Settings,
		CreatedAt: user.CreatedAt,
	}
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}
