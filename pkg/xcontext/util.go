package xcontext

import "context"

type (
	userIDKey   struct{}
	scopesKey   struct{}
	responseKey struct{}
)

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the id of the authenticated caller, or an empty
// string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithRequestScopes(ctx context.Context, scopes []string) context.Context {
	return context.WithValue(ctx, scopesKey{}, scopes)
}

// RequestScopes returns the scope set of the caller's access token.
func RequestScopes(ctx context.Context) []string {
	if scopes, ok := ctx.Value(scopesKey{}).([]string); ok {
		return scopes
	}

	return nil
}

type responseHolder struct {
	resp    any
	err     error
	written bool
}

// WithResponseHolder installs the mutable slot the router and its closers use
// to pass the handler outcome around. It is called once per request.
func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.resp = resp
	}
}

func GetResponse(ctx context.Context) any {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.resp
	}

	return nil
}

// SetResponseWritten tells the router a middleware already wrote the response
// (e.g. a redirect), so the JSON envelope must not be appended.
func SetResponseWritten(ctx context.Context) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.written = true
	}
}

func ResponseWritten(ctx context.Context) bool {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.written
	}

	return false
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.err
	}

	return nil
}
