package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tably/tably/internal/domain"
)

const restaurantColumns = `id, slug, COALESCE(domain, ''), name, description,
	open_time, close_time, timezone, is_active, created_at, updated_at`

type RestaurantRepo struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepo(pool *pgxpool.Pool) *RestaurantRepo {
	return &RestaurantRepo{pool: pool}
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var r domain.Restaurant
	err := row.Scan(&r.ID, &r.Slug, &r.Domain, &r.Name, &r.Description,
		&r.OpenTime, &r.CloseTime, &r.Timezone, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// nullable turns an empty string into NULL so the partial unique index on
// domain ignores restaurants without a custom domain.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *RestaurantRepo) Create(ctx context.Context, rest *domain.Restaurant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO restaurants (id, slug, domain, name, description, open_time, close_time, timezone, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rest.ID, rest.Slug, nullable(rest.Domain), rest.Name, rest.Description,
		rest.OpenTime, rest.CloseTime, rest.Timezone, rest.IsActive, rest.CreatedAt, rest.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("restaurantRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("restaurantRepo.Create: %w", err)
	}

	return nil
}

func (r *RestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("restaurantRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("restaurantRepo.GetByID: %w", err)
	}

	return rest, nil
}

func (r *RestaurantRepo) Update(ctx context.Context, rest *domain.Restaurant) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE restaurants SET slug = $1, domain = $2, name = $3, description = $4,
		 open_time = $5, close_time = $6, timezone = $7, is_active = $8, updated_at = now()
		 WHERE id = $9`,
		rest.Slug, nullable(rest.Domain), rest.Name, rest.Description,
		rest.OpenTime, rest.CloseTime, rest.Timezone, rest.IsActive, rest.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("restaurantRepo.Update: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("restaurantRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restaurantRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RestaurantRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE restaurants SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restaurantRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("restaurantRepo.Deactivate: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RestaurantRepo) FindActiveBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE slug = $1 AND is_active = TRUE`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("restaurantRepo.FindActiveBySlug: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("restaurantRepo.FindActiveBySlug: %w", err)
	}

	return rest, nil
}

// FindActiveByDomain matches a custom domain or falls back to slug equality,
// so a tenant reachable at its custom domain stays reachable by slug.
func (r *RestaurantRepo) FindActiveByDomain(ctx context.Context, host string) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants
		 WHERE (domain = $1 OR slug = $1) AND is_active = TRUE`, host))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("restaurantRepo.FindActiveByDomain: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("restaurantRepo.FindActiveByDomain: %w", err)
	}

	return rest, nil
}

func (r *RestaurantRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1 AND is_active = TRUE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("restaurantRepo.FindActiveByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("restaurantRepo.FindActiveByID: %w", err)
	}

	return rest, nil
}
