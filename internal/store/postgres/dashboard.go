package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tably/tably/internal/domain"
)

type DashboardRepo struct {
	pool *pgxpool.Pool
}

func NewDashboardRepo(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Stats gathers tenant-wide aggregates in a single round trip. Revenue counts
// delivered orders only; average rating is zero when there is no feedback.
func (r *DashboardRepo) Stats(ctx context.Context, restaurantID uuid.UUID) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM orders WHERE restaurant_id = $1),
		   (SELECT COUNT(*) FROM orders WHERE restaurant_id = $1 AND status NOT IN ('delivered', 'cancelled')),
		   (SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE restaurant_id = $1 AND status = 'delivered'),
		   (SELECT COUNT(*) FROM reservations WHERE restaurant_id = $1),
		   (SELECT COUNT(*) FROM feedback WHERE restaurant_id = $1),
		   (SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE restaurant_id = $1),
		   (SELECT COUNT(*) FROM menu_items WHERE restaurant_id = $1)`,
		restaurantID).Scan(&s.TotalOrders, &s.ActiveOrders, &s.RevenueCents,
		&s.TotalReservations, &s.PendingFeedback, &s.AverageRating, &s.MenuItems)
	if err != nil {
		return nil, fmt.Errorf("dashboardRepo.Stats: %w", err)
	}

	return &s, nil
}
