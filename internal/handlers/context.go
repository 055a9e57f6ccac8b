package handlers

import (
	"context"
)

type contextKey string

const ownerContextKey contextKey = "ownerID"

// ContextWithOwner stores the authenticated owner id for downstream handlers.
func ContextWithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// OwnerFromContext returns the authenticated owner id, or "" when the
// request skipped auth middleware.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerContextKey).(string)
	return owner
}
