package entity

// Scopes an access token can carry. A hidden login token gets ScopePaste,
// ScopeUser and ScopeUserAccessTokens; self-service tokens get whatever
// subset the owner asked for.
const (
	ScopePaste            = "paste"
	ScopeUser             = "user"
	ScopeUserRead         = "user:read"
	ScopeUserAccessTokens = "user:access_tokens"
)

var knownScopes = map[string]bool{
	ScopePaste:            true,
	ScopeUser:             true,
	ScopeUserRead:         true,
	ScopeUserAccessTokens: true,
}

func IsValidScope(scope string) bool {
	return knownScopes[scope]
}
