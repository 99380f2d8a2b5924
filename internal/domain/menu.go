package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Description  string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subcategory struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MenuItem struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	CategoryID    uuid.UUID
	SubcategoryID *uuid.UUID // nullable
	Name          string
	Description   string
	PriceCents    int64
	ImageURL      string
	IsAvailable   bool
	Position      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, restaurantID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	// Reorder assigns positions following the order of ids, in one transaction.
	Reorder(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) error
	// DeleteCascade removes the category's menu items, then its subcategories,
	// then the category itself, in one transaction. Object storage cleanup for
	// item images is the caller's responsibility and is best-effort.
	DeleteCascade(ctx context.Context, restaurantID, id uuid.UUID) error
}

type SubcategoryRepository interface {
	Create(ctx context.Context, s *Subcategory) error
	ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*Subcategory, error)
	Update(ctx context.Context, s *Subcategory) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type MenuItemRepository interface {
	Create(ctx context.Context, m *MenuItem) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItem, error)
	ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*MenuItem, error)
	ListAvailable(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItem, error)
	Update(ctx context.Context, m *MenuItem) error
	SetImageURL(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}
