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

type ReservationRepo struct {
	pool *pgxpool.Pool
}

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

const reservationColumns = `id, restaurant_id, user_id, name, phone, email,
	party_size, reserved_at, status, notes, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(&res.ID, &res.RestaurantID, &res.UserID, &res.Name, &res.Phone, &res.Email,
		&res.PartySize, &res.ReservedAt, &res.Status, &res.Notes, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reservations (id, restaurant_id, user_id, name, phone, email,
		 party_size, reserved_at, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID, res.RestaurantID, res.UserID, res.Name, res.Phone, res.Email,
		res.PartySize, res.ReservedAt, res.Status, res.Notes, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("reservationRepo.Create: %w", err)
	}

	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Reservation, error) {
	res, err := scanReservation(r.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reservationRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.GetByID: %w", err)
	}

	return res, nil
}

func (r *ReservationRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE restaurant_id = $1 ORDER BY reserved_at DESC LIMIT $2 OFFSET $3`,
		restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.List: %w", err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("reservationRepo.List: scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reservationRepo.List: rows: %w", err)
	}

	return reservations, nil
}

func (r *ReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reservations SET name = $1, phone = $2, email = $3, party_size = $4,
		 reserved_at = $5, status = $6, notes = $7, updated_at = now()
		 WHERE restaurant_id = $8 AND id = $9`,
		res.Name, res.Phone, res.Email, res.PartySize,
		res.ReservedAt, res.Status, res.Notes, res.RestaurantID, res.ID,
	)
	if err != nil {
		return fmt.Errorf("reservationRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reservationRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepo) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status domain.ReservationStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reservations SET status = $1, updated_at = now() WHERE restaurant_id = $2 AND id = $3`,
		status, restaurantID, id,
	)
	if err != nil {
		return fmt.Errorf("reservationRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reservationRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM reservations WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("reservationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reservationRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
