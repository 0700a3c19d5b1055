package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pastevault/backend/config"
	"github.com/pastevault/backend/pkg/xcontext"
	"golang.org/x/oauth2"
)

// OAuth2Service authenticates against providers exposing a plain REST
// user-info endpoint (github, gitlab).
type OAuth2Service struct {
	oauth2.Config

	name           string
	userURL        string
	idField        string
	usernameField  string
	avatarURLField string
}

func NewOAuth2Service(oauth2Cfg config.OAuth2Configs) *OAuth2Service {
	return &OAuth2Service{
		name:           oauth2Cfg.Name,
		userURL:        oauth2Cfg.UserURL,
		idField:        fieldOrDefault(oauth2Cfg.IDField, "id"),
		usernameField:  fieldOrDefault(oauth2Cfg.UsernameField, "login"),
		avatarURLField: fieldOrDefault(oauth2Cfg.AvatarURLField, "avatar_url"),
		Config: oauth2.Config{
			ClientID:     oauth2Cfg.ClientID,
			ClientSecret: oauth2Cfg.ClientSecret,
			RedirectURL:  oauth2Cfg.RedirectURL,
			Scopes:       oauth2Cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  oauth2Cfg.AuthURL,
				TokenURL: oauth2Cfg.TokenURL,
			},
		},
	}
}

func (s *OAuth2Service) Service() string {
	return s.name
}

func (s *OAuth2Service) AuthCodeURL(state string) string {
	return s.Config.AuthCodeURL(state)
}

func (s *OAuth2Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, xcontext.HTTPClient(ctx))
	return s.Config.Exchange(ctx, code)
}

func (s *OAuth2Service) GetProviderUser(
	ctx context.Context, token *oauth2.Token,
) (ProviderUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userURL, nil)
	if err != nil {
		return ProviderUser{}, err
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return ProviderUser{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ProviderUser{}, fmt.Errorf(
			"user info endpoint of %s returned status %d", s.name, resp.StatusCode)
	}

	var profile map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return ProviderUser{}, err
	}

	id, ok := profile[s.idField]
	if !ok {
		return ProviderUser{}, fmt.Errorf("no %s field in %s user info", s.idField, s.name)
	}

	user := ProviderUser{ID: stringify(id)}
	if username, ok := profile[s.usernameField].(string); ok {
		user.Username = username
	}
	if avatarURL, ok := profile[s.avatarURLField].(string); ok {
		user.AvatarURL = avatarURL
	}

	return user, nil
}

func stringify(v any) string {
	// Providers disagree on the id type; github returns a JSON number.
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}

func fieldOrDefault(field, def string) string {
	if field == "" {
		return def
	}
	return field
}
