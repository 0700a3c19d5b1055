package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pastevault/backend/pkg/errorx"
	"github.com/pastevault/backend/pkg/logger"
	"github.com/pastevault/backend/pkg/router"
	"github.com/pastevault/backend/pkg/testutil"
	"github.com/pastevault/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Message string `json:"message"`
}

type echoResponse struct {
	Message string `json:"message"`
}

func newSilentLogger() logger.Logger {
	return logger.NewLogger(logger.SILENCE)
}

func newTestRouter() *router.Router {
	return router.New(nil, testutil.MockConfigs(), newSilentLogger())
}

func serve(r *router.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRouterBindsQuery(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Message: req.Message}, nil
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/echo?message=hello", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.Equal(t, float64(0), envelope["code"])
	require.Equal(t, "hello", envelope["data"].(map[string]any)["message"])
}

func TestRouterBindsBody(t *testing.T) {
	r := newTestRouter()
	router.POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Message: req.Message}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"message":"hello"}`))
	rec := serve(r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello",
		decodeEnvelope(t, rec)["data"].(map[string]any)["message"])
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	rec := serve(r, httptest.NewRequest(http.MethodPost, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Nothing here")
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.Equal(t, float64(errorx.NotFound), envelope["code"])
	require.Equal(t, "Nothing here", envelope["error"])
}

func TestRouterUnknownErrorIsOpaque(t *testing.T) {
	r := newTestRouter()
	router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, errorx.Unknown.Message, decodeEnvelope(t, rec)["error"])
}

type stateRequest struct {
	State string `json:"-" session:"state,delete"`
}

type stateResponse struct {
	State string `json:"state"`
}

type seedRequest struct{}

type seedResponse struct{}

func newStateRouter() *router.Router {
	r := newTestRouter()
	router.GET(r, "/seed", func(ctx context.Context, req *seedRequest) (*seedResponse, error) {
		store := xcontext.SessionStore(ctx)
		session := store.Get(xcontext.HTTPRequest(ctx))
		session.Values["state"] = "state123"
		if err := store.Save(xcontext.HTTPWriter(ctx), session); err != nil {
			return nil, err
		}

		return &seedResponse{}, nil
	})
	router.GET(r, "/state", func(ctx context.Context, req *stateRequest) (*stateResponse, error) {
		return &stateResponse{State: req.State}, nil
	})
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestRouterSessionValueIsSingleUse(t *testing.T) {
	r := newStateRouter()

	seedRec := serve(r, httptest.NewRequest(http.MethodGet, "/seed", nil))
	cookie := sessionCookie(t, seedRec)

	first := httptest.NewRequest(http.MethodGet, "/state", nil)
	first.AddCookie(cookie)
	firstRec := serve(r, first)
	require.Equal(t, "state123",
		decodeEnvelope(t, firstRec)["data"].(map[string]any)["state"])

	// Replaying the identical cookie must not see the value again: the
	// state lives server-side and was consumed by the first read.
	second := httptest.NewRequest(http.MethodGet, "/state", nil)
	second.AddCookie(cookie)
	secondRec := serve(r, second)
	require.Empty(t,
		decodeEnvelope(t, secondRec)["data"].(map[string]any)["state"])
}

func TestRouterSessionSurvivesRefreshedCookie(t *testing.T) {
	r := newStateRouter()

	seedRec := serve(r, httptest.NewRequest(http.MethodGet, "/seed", nil))

	first := httptest.NewRequest(http.MethodGet, "/state", nil)
	first.AddCookie(sessionCookie(t, seedRec))
	firstRec := serve(r, first)
	require.Equal(t, "state123",
		decodeEnvelope(t, firstRec)["data"].(map[string]any)["state"])

	second := httptest.NewRequest(http.MethodGet, "/state", nil)
	second.AddCookie(sessionCookie(t, firstRec))
	secondRec := serve(r, second)
	require.Empty(t,
		decodeEnvelope(t, secondRec)["data"].(map[string]any)["state"])
}
