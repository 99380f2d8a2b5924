package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role constants. Every role, including "admin", is scoped to a single
// restaurant; there is no cross-tenant superuser in the request-serving
// paths. Platform-level restaurant creation lives behind a separate API key.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleManager  = "manager"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// StaffRoles are the roles allowed into the admin panel surface.
var StaffRoles = []string{RoleStaff, RoleManager, RoleOwner, RoleAdmin}

type User struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Email        string // unique per restaurant
	PasswordHash string `json:"-"` // argon2id, never serialized
	Name         string
	Phone        string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, restaurantID uuid.UUID, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, restaurantID uuid.UUID) ([]*User, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}
