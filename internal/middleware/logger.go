package middleware

import (
	"context"

	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// Logger reports every finished request.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s failed: %v", req.Method, req.URL.Path, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s", req.Method, req.URL.Path)
	}
}
