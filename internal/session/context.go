package session

import (
	"context"

	"PANTRY-TRACKER/internal/models"
)

type ctxKey int

const userKey ctxKey = iota

// ContextWithUser attaches the restored user record to the request context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user restored for this
// request, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
