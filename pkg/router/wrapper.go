package router

import (
	"net/http"

	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := router.newContext(r, w)

		func() {
			var req Request
			var err error
			switch method {
			case http.MethodGet:
				err = bindQuery(r, &req)
			case http.MethodPost:
				err = bindJSON(r, &req)
			}

			if err == nil {
				// Session binding runs before the handler and deletes
				// single-use values as it reads them.
				err = bindSession(ctx, &req)
			}

			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			for _, middleware := range router.befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)
		}()

		for _, middleware := range router.afters {
			if _, err := middleware(ctx); err != nil {
				xcontext.Logger(ctx).Errorf("After middleware failed: %v", err)
				xcontext.SetError(ctx, errorx.Unknown)
			}
		}

		writeResponse(ctx)

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}
