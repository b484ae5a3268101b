// Package identity carries the authenticated caller through a request context.
package identity

import "context"

// Identity is who the verified access token says the caller is.
type Identity struct {
	UserID int64
	Email  string
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserIDFromContext returns just the caller's id, 0 when unauthenticated.
func UserIDFromContext(ctx context.Context) int64 {
	id, _ := FromContext(ctx)
	return id.UserID
}
