package testutil

import (
	"context"
	"errors"

	"github.com/pastevault/backend/pkg/authenticator"
	"golang.org/x/oauth2"
)

type MockOAuth2Service struct {
	Name string

	AuthCodeURLFunc     func(state string) string
	ExchangeFunc        func(ctx context.Context, code string) (*oauth2.Token, error)
	GetProviderUserFunc func(ctx context.Context, token *oauth2.Token) (authenticator.ProviderUser, error)
}

func (m *MockOAuth2Service) Service() string {
	return m.Name
}

func (m *MockOAuth2Service) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}

	return "https://provider.example/authorize?state=" + state
}

func (m *MockOAuth2Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}

	return &oauth2.Token{AccessToken: "provider-token"}, nil
}

func (m *MockOAuth2Service) GetProviderUser(
	ctx context.Context, token *oauth2.Token,
) (authenticator.ProviderUser, error) {
	if m.GetProviderUserFunc != nil {
		return m.GetProviderUserFunc(ctx, token)
	}

	return authenticator.ProviderUser{}, errors.New("not implemented")
}
