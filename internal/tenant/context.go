package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
)

type contextKey string

const (
	ContextKeyRestaurantID   contextKey = "restaurant_id"
	ContextKeyRestaurantSlug contextKey = "restaurant_slug"
	ContextKeyRestaurant     contextKey = "restaurant"
)

// WithRestaurant attaches the resolved restaurant's id, slug and record to
// the context.
func WithRestaurant(ctx context.Context, r *domain.Restaurant) context.Context {
	ctx = context.WithValue(ctx, ContextKeyRestaurantID, r.ID)
	ctx = context.WithValue(ctx, ContextKeyRestaurantSlug, r.Slug)
	ctx = context.WithValue(ctx, ContextKeyRestaurant, r)
	return ctx
}

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyRestaurantID).(uuid.UUID)
	return v, ok
}

func SlugFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyRestaurantSlug).(string)
	return v, ok
}

func FromContext(ctx context.Context) (*domain.Restaurant, bool) {
	v, ok := ctx.Value(ContextKeyRestaurant).(*domain.Restaurant)
	return v, ok
}

// ScopeQuery appends a restaurant-id equality predicate to a query, using
// WHERE or AND depending on whether the query already has a WHERE clause.
// argPos is the 1-based positional parameter number the caller will bind the
// restaurant id to. The repositories scope structurally; this helper exists
// for hand-built list queries with optional filters.
func ScopeQuery(query string, argPos int) string {
	kw := " WHERE"
	if strings.Contains(strings.ToUpper(query), " WHERE ") {
		kw = " AND"
	}
	return fmt.Sprintf("%s%s restaurant_id = $%d", query, kw, argPos)
}
