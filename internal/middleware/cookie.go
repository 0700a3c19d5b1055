package middleware

import (
	"context"
	"net/http"

	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// HandleSetCookie applies the cookies a CookieInfo response carries.
func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.GetResponse(ctx).(model.CookieInfo)
		if !ok {
			return nil, nil
		}

		w := xcontext.HTTPWriter(ctx)
		for _, cookie := range resp.Cookies(ctx) {
			http.SetCookie(w, cookie)
		}

		return nil, nil
	}
}
