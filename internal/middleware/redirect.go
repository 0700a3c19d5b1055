package middleware

import (
	"context"
	"net/http"

	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// HandleRedirect turns a RedirectInfo response into a 307 instead of a JSON
// body. It must be the last After middleware.
func HandleRedirect() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.GetResponse(ctx).(model.RedirectInfo)
		if !ok {
			return nil, nil
		}

		url := resp.RedirectURL(ctx)
		if url == "" {
			return nil, nil
		}

		http.Redirect(
			xcontext.HTTPWriter(ctx),
			xcontext.HTTPRequest(ctx),
			url,
			http.StatusTemporaryRedirect,
		)
		xcontext.SetResponseWritten(ctx)

		return nil, nil
	}
}
