package model

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pastevault/backend/pkg/xcontext"
)

// RegistrationToken is the payload of the short-lived carrier token a new
// user receives between the OAuth callback and picking a username.
type RegistrationToken struct {
	ProviderName   string `mapstructure:"provider_name" json:"provider_name"`
	ProviderUserID string `mapstructure:"provider_user_id" json:"provider_user_id"`
	AvatarURL      string `mapstructure:"avatar_url" json:"avatar_url"`
}

type LoginRequest struct {
	Type string `json:"type"`
}

type LoginResponse struct {
	State      string `json:"-"`
	RedirectTo string `json:"-"`
}

func (r LoginResponse) SessionValues() map[string]any {
	return map[string]any{"state": r.State}
}

func (r LoginResponse) RedirectURL(ctx context.Context) string {
	return r.RedirectTo
}

type CallbackRequest struct {
	Type  string `json:"type"`
	State string `json:"state"`
	Code  string `json:"code"`

	// SessionState is the value stored at login time. The binding removes
	// it from the session, so a state can only ever be checked once.
	SessionState string `json:"-" session:"state,delete"`
}

type CallbackResponse struct {
	// AccessToken is set when the provider identity already belongs to a
	// user, RegistrationToken when an account still has to be created.
	AccessToken       string `json:"-"`
	RegistrationToken string `json:"-"`

	SuggestedUsername string `json:"-"`
}

func (r CallbackResponse) Cookies(ctx context.Context) []*http.Cookie {
	cfg := xcontext.Configs(ctx).Auth
	if r.AccessToken != "" {
		return []*http.Cookie{
			newAuthCookie(ctx, cfg.AccessToken.Name, r.AccessToken, cfg.AccessToken.Expiration),
		}
	}

	return []*http.Cookie{
		newAuthCookie(ctx, cfg.Registration.Name, r.RegistrationToken, cfg.Registration.Expiration),
	}
}

func (r CallbackResponse) RedirectURL(ctx context.Context) string {
	client := xcontext.Configs(ctx).ClientURL
	if r.AccessToken != "" {
		return client
	}

	return fmt.Sprintf("%s/create-account?username=%s", client, url.QueryEscape(r.SuggestedUsername))
}

type RegisterRequest struct {
	Username string `json:"username"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"-"`
}

func (r RegisterResponse) Cookies(ctx context.Context) []*http.Cookie {
	cfg := xcontext.Configs(ctx).Auth
	return []*http.Cookie{
		newAuthCookie(ctx, cfg.AccessToken.Name, r.AccessToken, cfg.AccessToken.Expiration),
		deleteCookie(ctx, cfg.Registration.Name),
	}
}

type LogoutRequest struct{}

type LogoutResponse struct{}

func (r LogoutResponse) Cookies(ctx context.Context) []*http.Cookie {
	return []*http.Cookie{
		deleteCookie(ctx, xcontext.Configs(ctx).Auth.AccessToken.Name),
	}
}

func (r LogoutResponse) RedirectURL(ctx context.Context) string {
	return xcontext.Configs(ctx).ClientURL
}
