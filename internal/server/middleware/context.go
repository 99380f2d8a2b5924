package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ContextKeyUserID        contextKey = "user_id"
	ContextKeyUserRole      contextKey = "role"
	ContextKeyTokenTenantID contextKey = "token_restaurant_id"
)

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(string)
	return v, ok
}

// TokenRestaurantIDFromContext returns the restaurant id claimed by the
// caller's token, as opposed to the one resolved from the request.
func TokenRestaurantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyTokenTenantID).(uuid.UUID)
	return v, ok
}
