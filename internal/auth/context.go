package auth

import "context"

type contextKey struct{}

// AuthContext describes the authenticated browser session attached to a
// request. APIToken is the remote API bearer credential stored at login.
type AuthContext struct {
	UserID    int64
	Username  string
	FullName  string
	APIToken  string
	SessionID int64
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// Token returns the remote API bearer credential for the request, or ""
// for an anonymous context. Wired into the API client as its TokenSource.
func Token(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.APIToken
}

func UserID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.UserID
}

// DisplayName prefers the full name, falling back to the username.
func DisplayName(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	if ac.FullName != "" {
		return ac.FullName
	}
	return ac.Username
}
