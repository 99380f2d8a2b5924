package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tably/tably/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	pool          *pgxpool.Pool
	restaurants   *RestaurantRepo
	users         *UserRepo
	categories    *CategoryRepo
	subcategories *SubcategoryRepo
	menuItems     *MenuItemRepo
	orders        *OrderRepo
	reservations  *ReservationRepo
	feedback      *FeedbackRepo
	settings      *SettingsRepo
	dashboard     *DashboardRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:          pool,
		restaurants:   NewRestaurantRepo(pool),
		users:         NewUserRepo(pool),
		categories:    NewCategoryRepo(pool),
		subcategories: NewSubcategoryRepo(pool),
		menuItems:     NewMenuItemRepo(pool),
		orders:        NewOrderRepo(pool),
		reservations:  NewReservationRepo(pool),
		feedback:      NewFeedbackRepo(pool),
		settings:      NewSettingsRepo(pool),
		dashboard:     NewDashboardRepo(pool),
	}, nil
}

// Migrate applies embedded goose migrations. It borrows a database/sql
// handle from the pgx pool for goose's benefit.
func (s *Store) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("postgres.Migrate: set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Bootstrap creates a restaurant together with its owner account and initial
// settings in one transaction. A failure at any step leaves nothing behind,
// so a retried onboarding request never collides with debris from a previous
// half-finished attempt.
func (s *Store) Bootstrap(ctx context.Context, rest *domain.Restaurant, owner *domain.User, settings *domain.RestaurantSettings) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store.Bootstrap: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`INSERT INTO restaurants (id, slug, domain, name, description, open_time, close_time, timezone, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rest.ID, rest.Slug, nullable(rest.Domain), rest.Name, rest.Description,
		rest.OpenTime, rest.CloseTime, rest.Timezone, rest.IsActive, rest.CreatedAt, rest.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("store.Bootstrap: restaurant: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("store.Bootstrap: restaurant: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, restaurant_id, email, password_hash, name, phone, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		owner.ID, owner.RestaurantID, owner.Email, owner.PasswordHash,
		owner.Name, owner.Phone, owner.Role, owner.Status, owner.CreatedAt, owner.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("store.Bootstrap: owner: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("store.Bootstrap: owner: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO restaurant_settings (restaurant_id, currency, tax_rate, ordering_enabled, reservations_enabled, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		settings.RestaurantID, settings.Currency, settings.TaxRate,
		settings.OrderingEnabled, settings.ReservationsEnabled, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store.Bootstrap: settings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store.Bootstrap: commit: %w", err)
	}

	return nil
}

func (s *Store) Restaurants() domain.RestaurantRepository    { return s.restaurants }
func (s *Store) Users() domain.UserRepository                { return s.users }
func (s *Store) Categories() domain.CategoryRepository       { return s.categories }
func (s *Store) Subcategories() domain.SubcategoryRepository { return s.subcategories }
func (s *Store) MenuItems() domain.MenuItemRepository        { return s.menuItems }
func (s *Store) Orders() domain.OrderRepository              { return s.orders }
func (s *Store) Reservations() domain.ReservationRepository  { return s.reservations }
func (s *Store) Feedback() domain.FeedbackRepository         { return s.feedback }
func (s *Store) Settings() domain.SettingsRepository         { return s.settings }
func (s *Store) Dashboard() domain.DashboardRepository       { return s.dashboard }

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
