package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Restaurant is the tenant root entity. Every other entity in the system
// hangs off a restaurant via restaurant_id. Restaurants are never hard
// deleted; deactivation flips IsActive and makes the tenant unresolvable.
type Restaurant struct {
	ID          uuid.UUID
	Slug        string // unique, used in subdomains and URL paths
	Domain      string // optional custom domain, empty when unset
	Name        string
	Description string
	OpenTime    string // "HH:MM" in the restaurant's timezone
	CloseTime   string
	Timezone    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestaurantSettings holds per-tenant operational settings.
type RestaurantSettings struct {
	RestaurantID        uuid.UUID
	Currency            string
	TaxRate             float64
	OrderingEnabled     bool
	ReservationsEnabled bool
	UpdatedAt           time.Time
}

// RestaurantBranding holds per-tenant presentation settings served to the
// client app.
type RestaurantBranding struct {
	RestaurantID   uuid.UUID
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	Tagline        string
	UpdatedAt      time.Time
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	Update(ctx context.Context, r *Restaurant) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// Active-only lookups used by the tenant resolution chain.
	FindActiveBySlug(ctx context.Context, slug string) (*Restaurant, error)
	FindActiveByDomain(ctx context.Context, domain string) (*Restaurant, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, restaurantID uuid.UUID) (*RestaurantSettings, error)
	Save(ctx context.Context, s *RestaurantSettings) error
	GetBranding(ctx context.Context, restaurantID uuid.UUID) (*RestaurantBranding, error)
	SaveBranding(ctx context.Context, b *RestaurantBranding) error
}
