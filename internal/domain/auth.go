package domain

import (
	"context"
	"errors"

	"github.com/pastevault/backend/internal/common"
	"github.com/pastevault/backend/internal/entity"
	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/internal/repository"
	"github.com/pastevault/backend/pkg/authenticator"
	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/idgen"
	"github.com/pastevault/backend/pkg/storage"
	"github.com/pastevault/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// createAttempts bounds the retries when a user insert loses the race for an
// id that passed the existence check.
const createAttempts = 3

// loginScopes is what a browser session token may do on behalf of the user.
var loginScopes = []string{
	entity.ScopePaste,
	entity.ScopeUser,
	entity.ScopeUserAccessTokens,
}

type AuthDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Callback(ctx context.Context, req *model.CallbackRequest) (*model.CallbackResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo        repository.UserRepository
	accessTokenRepo repository.AccessTokenRepository
	actionLogRepo   repository.ActionLogRepository
	storage         storage.Storage
	oauth2Services  []authenticator.IOAuth2Service
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	accessTokenRepo repository.AccessTokenRepository,
	actionLogRepo repository.ActionLogRepository,
	storage storage.Storage,
	oauth2Services ...authenticator.IOAuth2Service,
) AuthDomain {
	return &authDomain{
		userRepo:        userRepo,
		accessTokenRepo: accessTokenRepo,
		actionLogRepo:   actionLogRepo,
		storage:         storage,
		oauth2Services:  oauth2Services,
	}
}

func (d *authDomain) getOAuth2Service(name string) (authenticator.IOAuth2Service, bool) {
	for _, service := range d.oauth2Services {
		if service.Service() == name {
			return service, true
		}
	}

	return nil, false
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Unsupported provider %s", req.Type)
	}

	state, err := idgen.GenerateState()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		State:      state,
		RedirectTo: service.AuthCodeURL(state),
	}, nil
}

func (d *authDomain) Callback(
	ctx context.Context, req *model.CallbackRequest,
) (*model.CallbackResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Unsupported provider %s", req.Type)
	}

	// An empty session state means login never ran on this session; that is
	// our bug or a forged request, not a user error.
	if req.SessionState == "" {
		xcontext.Logger(ctx).Errorf("No state found in the session")
		return nil, errorx.New(errorx.Internal, "Request failed")
	}

	if req.State == "" || req.State != req.SessionState {
		return nil, errorx.New(errorx.BadRequest, "Mismatched state")
	}

	serviceToken, err := service.Exchange(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange the authorization code: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot sign in with %s", req.Type)
	}

	providerUser, err := service.GetProviderUser(ctx, serviceToken)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the provider user: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot sign in with %s", req.Type)
	}

	user, err := d.userRepo.GetByProvider(ctx, service.Service(), providerUser.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the user by provider: %v", err)
			return nil, errorx.Unknown
		}

		// First visit with this identity. Hand out a short-lived carrier
		// token and let the client pick a username.
		carrier, err := xcontext.TokenEngine(ctx).Generate(
			xcontext.Configs(ctx).Auth.Registration.Expiration,
			model.RegistrationToken{
				ProviderName:   service.Service(),
				ProviderUserID: providerUser.ID,
				AvatarURL:      providerUser.AvatarURL,
			})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot generate the registration token: %v", err)
			return nil, errorx.Unknown
		}

		return &model.CallbackResponse{
			RegistrationToken: carrier,
			SuggestedUsername: providerUser.Username,
		}, nil
	}

	cfg := xcontext.Configs(ctx).Auth
	_, token, err := common.IssueAccessToken(
		ctx, d.accessTokenRepo, d.actionLogRepo,
		user.ID, loginScopes,
		timeNow().Add(cfg.AccessToken.Expiration),
		true, "login",
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot issue the login token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CallbackResponse{AccessToken: token}, nil
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	cfg := xcontext.Configs(ctx)

	cookie, err := xcontext.HTTPRequest(ctx).Cookie(cfg.Auth.Registration.Name)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "No registration in progress")
	}

	var carrier model.RegistrationToken
	if err := xcontext.TokenEngine(ctx).Verify(cookie.Value, &carrier); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify the registration token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid registration token")
	}

	if req.Username == "" {
		return nil, errorx.New(errorx.BadRequest, "Username must not be empty")
	}

	_, err = d.userRepo.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, errorx.New(errorx.BadRequest, "Username %s is already taken", req.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the user by username: %v", err)
		return nil, errorx.Unknown
	}

	avatarURL := carrier.AvatarURL
	if avatarURL != "" {
		uploaded, err := common.FetchAvatar(ctx, d.storage, avatarURL)
		if err != nil {
			// The provider copy still works, so keep registering.
			xcontext.Logger(ctx).Warnf("Cannot fetch the avatar: %v", err)
		} else {
			avatarURL = uploaded
		}
	}

	user := &entity.User{
		Username:       req.Username,
		ProviderName:   carrier.ProviderName,
		ProviderUserID: carrier.ProviderUserID,
		AvatarURL:      avatarURL,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for attempt := 0; ; attempt++ {
		id, err := idgen.Generate(ctx, func(ctx context.Context, id string) (bool, error) {
			_, err := d.userRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return false, nil
				}

				return false, err
			}

			return true, nil
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot generate the user id: %v", err)
			return nil, errorx.Unknown
		}

		user.ID = id
		err = d.userRepo.Create(ctx, user)
		if err == nil {
			break
		}

		// The id passed the existence check but lost the insert race.
		if repository.IsDuplicateKeyError(err) && attempt+1 < createAttempts {
			continue
		}

		xcontext.Logger(ctx).Errorf("Cannot create the user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.actionLogRepo.Create(ctx, &entity.ActionLog{
		UserID: user.ID,
		Type:   entity.ActionUserCreated,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot log the user creation: %v", err)
		return nil, errorx.Unknown
	}

	_, token, err := common.IssueAccessToken(
		ctx, d.accessTokenRepo, d.actionLogRepo,
		user.ID, loginScopes,
		timeNow().Add(cfg.Auth.AccessToken.Expiration),
		true, "login",
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot issue the login token: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	return &model.RegisterResponse{
		User:        model.ConvertUser(*user),
		AccessToken: token,
	}, nil
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(*user)}, nil
}

// Logout deletes the token backing the browser session. A request without a
// valid session token has nothing to log out of and fails.
func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name
	cookie, err := xcontext.HTTPRequest(ctx).Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, common.ErrInvalidAccessToken
	}

	record, err := common.VerifyAccessToken(ctx, d.accessTokenRepo, cookie.Value)
	if err != nil {
		return nil, err
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

	return &model.LogoutResponse{}, nil
}
