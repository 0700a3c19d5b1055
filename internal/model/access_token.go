package model

import (
	"time"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/pkg/errorx"
)

// ExpiresIn is the coarse lifetime a caller picks for a self-service token.
type ExpiresIn string

const (
	ExpiresNever    ExpiresIn = "never"
	ExpiresOneHour  ExpiresIn = "1h"
	ExpiresOneDay   ExpiresIn = "1d"
	ExpiresOneWeek  ExpiresIn = "1w"
	ExpiresOneMonth ExpiresIn = "1m"
	ExpiresOneYear  ExpiresIn = "1y"
)

// Time resolves the bucket against now. "never" maps to a far-future
// timestamp so every token row carries a concrete expiry.
func (e ExpiresIn) Time(now time.Time) (time.Time, error) {
	switch e {
	case ExpiresNever:
		return now.AddDate(100, 0, 0), nil
	case ExpiresOneHour:
		return now.Add(time.Hour), nil
	case ExpiresOneDay:
		return now.AddDate(0, 0, 1), nil
	case ExpiresOneWeek:
		return now.AddDate(0, 0, 7), nil
	case ExpiresOneMonth:
		return now.AddDate(0, 1, 0), nil
	case ExpiresOneYear:
		return now.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, errorx.New(errorx.BadRequest, "Invalid expiration %s", string(e))
	}
}

type AccessToken struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Scopes      []string  `json:"scopes"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ConvertAccessToken(token entity.AccessToken) AccessToken {
	return AccessToken{
		ID:          token.ID,
		Description: token.Description,
		Scopes:      token.Scopes,
		ExpiresAt:   token.ExpiresAt,
		CreatedAt:   token.CreatedAt,
	}
}

type GenerateAccessTokenRequest struct {
	Scopes      []string  `json:"scopes"`
	ExpiresIn   ExpiresIn `json:"expiresIn"`
	Description string    `json:"description"`
}

type GenerateAccessTokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type GetAccessTokensRequest struct{}

type GetAccessTokensResponse struct {
	AccessTokens []AccessToken `json:"accessTokens"`
}

type DeleteAccessTokenRequest struct {
	ID string `json:"id"`
}

type DeleteAccessTokenResponse struct{}
