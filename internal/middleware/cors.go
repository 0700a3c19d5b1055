package middleware

import (
	"context"

	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// AllowCors lets the browser client call the api with credentials.
func AllowCors() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		header := xcontext.HTTPWriter(ctx).Header()
		header.Set("Access-Control-Allow-Origin", xcontext.Configs(ctx).ClientURL)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Vary", "Origin")

		return nil, nil
	}
}
