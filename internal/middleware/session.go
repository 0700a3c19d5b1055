package middleware

import (
	"context"

	"github.com/pastevault/backend/internal/model"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/xcontext"
)

// HandleSaveSession persists the values a SessionInfo response carries. It
// must run before any middleware that writes the response body.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.GetResponse(ctx).(model.SessionInfo)
		if !ok {
			return nil, nil
		}

		store := xcontext.SessionStore(ctx)
		session := store.Get(xcontext.HTTPRequest(ctx))
		for key, value := range resp.SessionValues() {
			session.Values[key] = value
		}

		return nil, store.Save(xcontext.HTTPWriter(ctx), session)
	}
}
