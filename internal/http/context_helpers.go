package httpx

import (
	"context"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
)

// sessionKey is an unexported context key type for session storage.
type sessionKey struct{}

// SetSessionInContext returns a new context carrying the session.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the session from the context, or nil
// when the request is unauthenticated.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok {
		return session
	}
	return nil
}
