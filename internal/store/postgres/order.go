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

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, restaurant_id, user_id, session_id, customer_name, customer_phone,
	type, status, table_number, notes, tip_cents, total_cents, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.UserID, &o.SessionID, &o.CustomerName, &o.CustomerPhone,
		&o.Type, &o.Status, &o.TableNumber, &o.Notes, &o.TipCents, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order and all of its items in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order, items []*domain.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("orderRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, restaurant_id, user_id, session_id, customer_name, customer_phone,
		 type, status, table_number, notes, tip_cents, total_cents, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.RestaurantID, o.UserID, o.SessionID, o.CustomerName, o.CustomerPhone,
		o.Type, o.Status, o.TableNumber, o.Notes, o.TipCents, o.TotalCents, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("orderRepo.Create: order: %w", err)
	}

	for _, it := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, menu_item_id, name, unit_price_cents, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.MenuItemID, it.Name, it.UnitPriceCents, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("orderRepo.Create: item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("orderRepo.Create: commit: %w", err)
	}

	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	return o, nil
}

// GetItems joins through orders so an order id from another restaurant
// yields nothing.
func (r *OrderRepo) GetItems(ctx context.Context, restaurantID, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.menu_item_id, oi.name, oi.unit_price_cents, oi.quantity
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.restaurant_id = $1 AND oi.order_id = $2`,
		restaurantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetItems: %w", err)
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.UnitPriceCents, &it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("orderRepo.GetItems: scan: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orderRepo.GetItems: rows: %w", err)
	}

	return items, nil
}

func (r *OrderRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		restaurantID, limit, offset)
}

func (r *OrderRepo) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE restaurant_id = $1 AND status NOT IN ('delivered', 'cancelled')
		 ORDER BY created_at`,
		restaurantID)
}

func (r *OrderRepo) ListBySession(ctx context.Context, restaurantID uuid.UUID, sessionID string) ([]*domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE restaurant_id = $1 AND session_id = $2 ORDER BY created_at DESC`,
		restaurantID, sessionID)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.list: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("orderRepo.list: scan: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orderRepo.list: rows: %w", err)
	}

	return orders, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE restaurant_id = $2 AND id = $3`,
		status, restaurantID, id,
	)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}
