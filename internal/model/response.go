package model

import (
	"context"
	"net/http"
	"time"

	"github.com/pastevault/backend/pkg/xcontext"
)

// SessionInfo responses ask the router to persist values into the caller's
// session before the response is written.
type SessionInfo interface {
	SessionValues() map[string]any
}

// CookieInfo responses carry cookies to set on the caller.
type CookieInfo interface {
	Cookies(ctx context.Context) []*http.Cookie
}

// RedirectInfo responses redirect the caller instead of returning JSON.
type RedirectInfo interface {
	RedirectURL(ctx context.Context) string
}

func newAuthCookie(ctx context.Context, name, value string, expiration time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(expiration),
		HttpOnly: true,
		Secure:   xcontext.Configs(ctx).Auth.Https,
		SameSite: http.SameSiteStrictMode,
	}
}

func deleteCookie(ctx context.Context, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   xcontext.Configs(ctx).Auth.Https,
		SameSite: http.SameSiteStrictMode,
	}
}
