package v1

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/mailer"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Restaurants() domain.RestaurantRepository
	Users() domain.UserRepository
	Categories() domain.CategoryRepository
	Subcategories() domain.SubcategoryRepository
	MenuItems() domain.MenuItemRepository
	Orders() domain.OrderRepository
	Reservations() domain.ReservationRepository
	Feedback() domain.FeedbackRepository
	Settings() domain.SettingsRepository
	Dashboard() domain.DashboardRepository

	// Bootstrap creates a restaurant with its owner account and initial
	// settings atomically. All three rows exist afterwards, or none do.
	Bootstrap(ctx context.Context, rest *domain.Restaurant, owner *domain.User, settings *domain.RestaurantSettings) error
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, restaurantID uuid.UUID, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, restaurantID uuid.UUID, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, restaurantID, userID uuid.UUID) (*domain.User, error)
	HashPassword(password string) (string, error)
}

// Publisher abstracts the realtime event bus. *redis.PubSub satisfies this
// interface.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ObjectStorage abstracts image uploads. *storage.S3 satisfies this
// interface. A nil ObjectStorage disables upload endpoints.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// DNSProvider abstracts subdomain record creation at restaurant onboarding.
// *dnsprovider.Cloudflare satisfies this interface. A nil DNSProvider skips
// record creation.
type DNSProvider interface {
	CreateSubdomain(ctx context.Context, slug string) (string, error)
}

// Mailer is re-exported so callers wiring routes depend on one package.
type Mailer = mailer.Mailer
