package domain

import (
	"context"

	"github.com/google/uuid"
)

// DashboardStats aggregates tenant-wide numbers for the admin dashboard.
type DashboardStats struct {
	TotalOrders       int64
	ActiveOrders      int64
	RevenueCents      int64 // delivered orders only
	TotalReservations int64
	PendingFeedback   int64
	AverageRating     float64
	MenuItems         int64
}

type DashboardRepository interface {
	Stats(ctx context.Context, restaurantID uuid.UUID) (*DashboardStats, error)
}
