package shared

import "context"

// ctxKey keeps context values private to this package.
type ctxKey int

const sessionKey ctxKey = iota

// ContextWithSession attaches the request session for downstream handlers.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext returns the request session, or nil when the request
// never passed the session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}

// UserFromContext returns the authenticated user id, or false when the
// session is missing or anonymous.
func UserFromContext(ctx context.Context) (string, bool) {
	sess := SessionFromContext(ctx)
	if sess == nil || sess.User() == "" {
		return "", false
	}
	return sess.User(), true
}
