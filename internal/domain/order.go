package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// NormalizeOrderStatus maps an incoming status string to a member of the
// order status set. "accept" is accepted as a synonym for "accepted" and
// normalized on write. Membership is the only validation: any status in the
// set is accepted regardless of the order's current state.
func NormalizeOrderStatus(s string) (OrderStatus, bool) {
	if s == "accept" {
		return OrderStatusAccepted, true
	}
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions follow this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

type Order struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	UserID        *uuid.UUID // nil for guest orders
	SessionID     string     // client-generated identifier for guest orders
	CustomerName  string
	CustomerPhone string
	Type          string
	Status        OrderStatus
	TableNumber   string
	Notes         string
	TipCents      int64
	TotalCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots the item name and unit price at order time so later
// menu edits do not rewrite order history.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	MenuItemID     uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// OrderTotal computes the persisted total: the sum of each line's unit price
// times quantity, plus the tip.
func OrderTotal(items []*OrderItem, tipCents int64) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total + tipCents
}

type OrderRepository interface {
	// Create persists the order and its items atomically.
	Create(ctx context.Context, o *Order, items []*OrderItem) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*Order, error)
	GetItems(ctx context.Context, restaurantID, orderID uuid.UUID) ([]*OrderItem, error)
	List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*Order, error)
	ListActive(ctx context.Context, restaurantID uuid.UUID) ([]*Order, error)
	ListBySession(ctx context.Context, restaurantID uuid.UUID, sessionID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status OrderStatus) error
}
