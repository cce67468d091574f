package auth

import (
	"context"
)

type userContextKey struct{}

// SetUserToContext stores the authenticated user in context for the middleware chain.
func SetUserToContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext returns nil if no user was stored.
func GetUserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}
