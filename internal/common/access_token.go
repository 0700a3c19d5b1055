package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/crypto"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/idgen"
	"github.com/pastevault/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// secretLength is the character count of the hex token secret.
const secretLength = 64

// createAttempts bounds the retries when an insert loses the race for an id
// that passed the existence check.
const createAttempts = 3

// timeNow is swapped out by tests pinning the expiry clock.
var timeNow = time.Now

// ErrInvalidAccessToken is the only failure VerifyAccessToken reports. A
// malformed token, an unknown id, an expired record and a wrong secret are
// indistinguishable to the caller.
var ErrInvalidAccessToken = errorx.New(errorx.Unauthenticated, "Invalid access token")

// IssueAccessToken creates a token record and returns its id together with
// the composite "{id}-{secret}" string. The secret leaves this function
// exactly once; only its sha-512 digest is stored.
func IssueAccessToken(
	ctx context.Context,
	accessTokenRepo repository.AccessTokenRepository,
	actionLogRepo repository.ActionLogRepository,
	ownerID string,
	scopes []string,
	expiresAt time.Time,
	hidden bool,
	description string,
) (string, string, error) {
	secret := crypto.GenerateRandomHex(secretLength)
	record := &entity.AccessToken{
		OwnerID:     ownerID,
		TokenHash:   crypto.SHA512([]byte(secret)),
		Scopes:      scopes,
		ExpiresAt:   expiresAt,
		Hidden:      hidden,
		Description: description,
	}

	for attempt := 0; ; attempt++ {
		id, err := idgen.Generate(ctx, func(ctx context.Context, id string) (bool, error) {
			_, err := accessTokenRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return false, nil
				}

				return false, err
			}

			return true, nil
		})
		if err != nil {
			return "", "", err
		}

		record.ID = id
		err = accessTokenRepo.Create(ctx, record)
		if err == nil {
			break
		}

		// The id passed the existence check but lost the insert race.
		// Draw another one.
		if repository.IsDuplicateKeyError(err) && attempt+1 < createAttempts {
			continue
		}

		return "", "", err
	}

	err := actionLogRepo.Create(ctx, &entity.ActionLog{
		UserID: ownerID,
		Type:   entity.ActionAccessTokenCreated,
	})
	if err != nil {
		return "", "", err
	}

	return record.ID, fmt.Sprintf("%s-%s", record.ID, secret), nil
}

// VerifyAccessToken resolves a composite token string to its record. Expired
// records are deleted on sight, so the store purges itself lazily.
func VerifyAccessToken(
	ctx context.Context,
	accessTokenRepo repository.AccessTokenRepository,
	token string,
) (*entity.AccessToken, error) {
	id, secret, ok := strings.Cut(token, "-")
	if !ok || id == "" || secret == "" {
		return nil, ErrInvalidAccessToken
	}

	record, err := accessTokenRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAccessToken
		}

		xcontext.Logger(ctx).Errorf("Cannot get the access token: %v", err)
		return nil, errorx.Unknown
	}

	// A token is dead at its expiry instant, not one tick later.
	if !record.ExpiresAt.After(timeNow()) {
		if err := accessTokenRepo.DeleteByID(ctx, record.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot purge the expired token: %v", err)
		}

		return nil, ErrInvalidAccessToken
	}

	if !crypto.Equal(crypto.SHA512([]byte(secret)), record.TokenHash) {
		return nil, ErrInvalidAccessToken
	}

	return record, nil
}

// ResolveAccessToken extracts the raw token from the request, preferring the
// auth cookie over the Authorization header.
func ResolveAccessToken(ctx context.Context) (string, bool) {
	req := xcontext.HTTPRequest(ctx)

	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name
	if cookie, err := req.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		if token := strings.TrimPrefix(authorization, "Bearer "); token != "" {
			return token, true
		}
	}

	return "", false
}
