package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusStarted   ReservationStatus = "started"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// NormalizeReservationStatus validates membership in the reservation status
// set. Like orders, transitions are not validated against the current state.
func NormalizeReservationStatus(s string) (ReservationStatus, bool) {
	switch st := ReservationStatus(s); st {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusStarted, ReservationStatusCompleted,
		ReservationStatusCancelled:
		return st, true
	}
	return "", false
}

type Reservation struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	UserID       *uuid.UUID // nil for public reservations
	Name         string
	Phone        string
	Email        string
	PartySize    int
	ReservedAt   time.Time
	Status       ReservationStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*Reservation, error)
	Update(ctx context.Context, r *Reservation) error
	UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status ReservationStatus) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}
