package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pastevault/backend/config"
	"github.com/pastevault/backend/pkg/xcontext"
	"golang.org/x/oauth2"
)

// OIDCService authenticates against OpenID Connect providers (google). The
// provider identity comes from the verified id_token, not a user-info call.
type OIDCService struct {
	*oidc.Provider
	oauth2.Config

	name string
}

func NewOIDCService(ctx context.Context, oauth2Cfg config.OAuth2Configs) (*OIDCService, error) {
	provider, err := oidc.NewProvider(ctx, oauth2Cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &OIDCService{
		name:     oauth2Cfg.Name,
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     oauth2Cfg.ClientID,
			ClientSecret: oauth2Cfg.ClientSecret,
			RedirectURL:  oauth2Cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       append([]string{oidc.ScopeOpenID}, oauth2Cfg.Scopes...),
		},
	}, nil
}

func (s *OIDCService) Service() string {
	return s.name
}

func (s *OIDCService) AuthCodeURL(state string) string {
	return s.Config.AuthCodeURL(state)
}

func (s *OIDCService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, xcontext.HTTPClient(ctx))
	return s.Config.Exchange(ctx, code)
}

func (s *OIDCService) GetProviderUser(
	ctx context.Context, token *oauth2.Token,
) (ProviderUser, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return ProviderUser{}, errors.New("no id_token field in oauth2 token")
	}

	idToken, err := s.Verifier(&oidc.Config{ClientID: s.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return ProviderUser{}, err
	}

	var profile struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&profile); err != nil {
		return ProviderUser{}, errors.New("invalid id token")
	}

	if profile.Sub == "" {
		return ProviderUser{}, fmt.Errorf("no sub claim in %s id token", s.name)
	}

	username := profile.Name
	if username == "" {
		username = profile.Email
	}

	return ProviderUser{
		ID:        profile.Sub,
		Username:  username,
		AvatarURL: profile.Picture,
	}, nil
}
