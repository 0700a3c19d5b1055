package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/xcontext"
)

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func writeResponse(ctx context.Context) {
	if xcontext.ResponseWritten(ctx) {
		return
	}

	w := xcontext.HTTPWriter(ctx)
	w.Header().Set("Content-Type", "application/json")

	if err := xcontext.Error(ctx); err != nil {
		var xerr errorx.Error
		if !errors.As(err, &xerr) {
			xcontext.Logger(ctx).Errorf("Unexpected handler error: %v", err)
			xerr = errorx.Unknown
		}

		w.WriteHeader(statusOf(xerr.Code))
		writeJSON(ctx, w, response{Code: int(xerr.Code), Error: xerr.Message})
		return
	}

	writeJSON(ctx, w, response{Code: 0, Data: xcontext.GetResponse(ctx)})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, resp response) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode the response: %v", err)
	}
}

func statusOf(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.BadResponse:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.Unavailable:
		return http.StatusBadGateway
	case errorx.NotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
