package authenticator

import (
	"context"

	"golang.org/x/oauth2"
)

// ProviderUser is the identity an OAuth2 provider reports for its user.
type ProviderUser struct {
	ID        string
	Username  string
	AvatarURL string
}

type IOAuth2Service interface {
	Service() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	GetProviderUser(ctx context.Context, token *oauth2.Token) (ProviderUser, error)
}
