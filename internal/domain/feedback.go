package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	OrderID      *uuid.UUID // nullable, feedback may be general
	Rating       int        // 1..5
	Comment      string
	AuthorName   string
	AuthorEmail  string
	CreatedAt    time.Time
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*Feedback, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}
