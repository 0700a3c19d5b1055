package middleware

import (
	"context"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// AuthVerifier gates a router branch behind a valid access token. Scopes are
// any-of: the token must carry at least one of them.
type AuthVerifier struct {
	accessTokenRepo repository.AccessTokenRepository
	scopes          []string
}

func NewAuthVerifier(accessTokenRepo repository.AccessTokenRepository) *AuthVerifier {
	return &AuthVerifier{accessTokenRepo: accessTokenRepo}
}

func (v *AuthVerifier) WithScopes(scopes ...string) *AuthVerifier {
	clone := *v
	clone.scopes = scopes
	return &clone
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token, ok := common.ResolveAccessToken(ctx)
		if !ok {
			return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
		}

		record, err := common.VerifyAccessToken(ctx, v.accessTokenRepo, token)
		if err != nil {
			return nil, err
		}

		if len(v.scopes) > 0 && !hasAnyScope(record.Scopes, v.scopes) {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		ctx = xcontext.WithRequestUserID(ctx, record.OwnerID)
		ctx = xcontext.WithRequestScopes(ctx, record.Scopes)
		return ctx, nil
	}
}

func hasAnyScope(granted, required []string) bool {
	for _, r := range required {
		for _, g := range granted {
			if g == r {
				return true
			}
		}
	}

	return false
}
