package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tably/tably/internal/domain"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO feedback (id, restaurant_id, order_id, rating, comment, author_name, author_email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.RestaurantID, f.OrderID, f.Rating, f.Comment, f.AuthorName, f.AuthorEmail, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Create: %w", err)
	}

	return nil
}

func (r *FeedbackRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, restaurant_id, order_id, rating, comment, author_name, author_email, created_at
		 FROM feedback WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("feedbackRepo.List: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		err := rows.Scan(&f.ID, &f.RestaurantID, &f.OrderID, &f.Rating, &f.Comment,
			&f.AuthorName, &f.AuthorEmail, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("feedbackRepo.List: scan: %w", err)
		}
		entries = append(entries, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedbackRepo.List: rows: %w", err)
	}

	return entries, nil
}

func (r *FeedbackRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM feedback WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("feedbackRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("feedbackRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
