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

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) Get(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantSettings, error) {
	var s domain.RestaurantSettings
	err := r.pool.QueryRow(ctx,
		`SELECT restaurant_id, currency, tax_rate, ordering_enabled, reservations_enabled, updated_at
		 FROM restaurant_settings WHERE restaurant_id = $1`,
		restaurantID).Scan(&s.RestaurantID, &s.Currency, &s.TaxRate, &s.OrderingEnabled, &s.ReservationsEnabled, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settingsRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("settingsRepo.Get: %w", err)
	}

	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *domain.RestaurantSettings) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO restaurant_settings (restaurant_id, currency, tax_rate, ordering_enabled, reservations_enabled, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (restaurant_id) DO UPDATE SET
		   currency = EXCLUDED.currency,
		   tax_rate = EXCLUDED.tax_rate,
		   ordering_enabled = EXCLUDED.ordering_enabled,
		   reservations_enabled = EXCLUDED.reservations_enabled,
		   updated_at = EXCLUDED.updated_at`,
		s.RestaurantID, s.Currency, s.TaxRate, s.OrderingEnabled, s.ReservationsEnabled, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("settingsRepo.Save: %w", err)
	}

	return nil
}

func (r *SettingsRepo) GetBranding(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantBranding, error) {
	var b domain.RestaurantBranding
	err := r.pool.QueryRow(ctx,
		`SELECT restaurant_id, logo_url, primary_color, secondary_color, tagline, updated_at
		 FROM restaurant_branding WHERE restaurant_id = $1`,
		restaurantID).Scan(&b.RestaurantID, &b.LogoURL, &b.PrimaryColor, &b.SecondaryColor, &b.Tagline, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settingsRepo.GetBranding: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("settingsRepo.GetBranding: %w", err)
	}

	return &b, nil
}

func (r *SettingsRepo) SaveBranding(ctx context.Context, b *domain.RestaurantBranding) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO restaurant_branding (restaurant_id, logo_url, primary_color, secondary_color, tagline, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (restaurant_id) DO UPDATE SET
		   logo_url = EXCLUDED.logo_url,
		   primary_color = EXCLUDED.primary_color,
		   secondary_color = EXCLUDED.secondary_color,
		   tagline = EXCLUDED.tagline,
		   updated_at = EXCLUDED.updated_at`,
		b.RestaurantID, b.LogoURL, b.PrimaryColor, b.SecondaryColor, b.Tagline, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("settingsRepo.SaveBranding: %w", err)
	}

	return nil
}
