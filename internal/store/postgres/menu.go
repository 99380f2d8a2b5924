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

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

const categoryColumns = `id, restaurant_id, name, description, position, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, restaurant_id, name, description, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.RestaurantID, c.Name, c.Description, c.Position, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("categoryRepo.Create: %w", err)
	}

	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}

	return c, nil
}

func (r *CategoryRepo) List(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE restaurant_id = $1 ORDER BY position, created_at`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.List: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("categoryRepo.List: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categoryRepo.List: rows: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $1, description = $2, position = $3, updated_at = now()
		 WHERE restaurant_id = $4 AND id = $5`,
		c.Name, c.Description, c.Position, c.RestaurantID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("categoryRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("categoryRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Reorder assigns ascending positions following the order of ids. Runs in a
// single transaction so a partial reorder never becomes visible.
func (r *CategoryRepo) Reorder(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("categoryRepo.Reorder: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for pos, id := range ids {
		tag, err := tx.Exec(ctx,
			`UPDATE categories SET position = $1, updated_at = now() WHERE restaurant_id = $2 AND id = $3`,
			pos, restaurantID, id,
		)
		if err != nil {
			return fmt.Errorf("categoryRepo.Reorder: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("categoryRepo.Reorder: id %s: %w", id, domain.ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("categoryRepo.Reorder: commit: %w", err)
	}

	return nil
}

// DeleteCascade removes the category's menu items, then its subcategories,
// then the category itself, in one transaction.
func (r *CategoryRepo) DeleteCascade(ctx context.Context, restaurantID, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("categoryRepo.DeleteCascade: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`DELETE FROM menu_items WHERE restaurant_id = $1 AND category_id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("categoryRepo.DeleteCascade: items: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM subcategories WHERE restaurant_id = $1 AND category_id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("categoryRepo.DeleteCascade: subcategories: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM categories WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("categoryRepo.DeleteCascade: category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("categoryRepo.DeleteCascade: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("categoryRepo.DeleteCascade: commit: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Subcategories
// ---------------------------------------------------------------------------

type SubcategoryRepo struct {
	pool *pgxpool.Pool
}

func NewSubcategoryRepo(pool *pgxpool.Pool) *SubcategoryRepo {
	return &SubcategoryRepo{pool: pool}
}

const subcategoryColumns = `id, restaurant_id, category_id, name, position, created_at, updated_at`

func scanSubcategory(row pgx.Row) (*domain.Subcategory, error) {
	var s domain.Subcategory
	err := row.Scan(&s.ID, &s.RestaurantID, &s.CategoryID, &s.Name, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubcategoryRepo) Create(ctx context.Context, s *domain.Subcategory) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subcategories (id, restaurant_id, category_id, name, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.RestaurantID, s.CategoryID, s.Name, s.Position, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("subcategoryRepo.Create: %w", err)
	}

	return nil
}

func (r *SubcategoryRepo) ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.Subcategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+subcategoryColumns+` FROM subcategories
		 WHERE restaurant_id = $1 AND category_id = $2 ORDER BY position, created_at`,
		restaurantID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("subcategoryRepo.ListByCategory: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Subcategory
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("subcategoryRepo.ListByCategory: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subcategoryRepo.ListByCategory: rows: %w", err)
	}

	return subs, nil
}

func (r *SubcategoryRepo) Update(ctx context.Context, s *domain.Subcategory) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subcategories SET name = $1, position = $2, updated_at = now()
		 WHERE restaurant_id = $3 AND id = $4`,
		s.Name, s.Position, s.RestaurantID, s.ID,
	)
	if err != nil {
		return fmt.Errorf("subcategoryRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subcategoryRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *SubcategoryRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subcategories WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("subcategoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subcategoryRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Menu items
// ---------------------------------------------------------------------------

type MenuItemRepo struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepo(pool *pgxpool.Pool) *MenuItemRepo {
	return &MenuItemRepo{pool: pool}
}

const menuItemColumns = `id, restaurant_id, category_id, subcategory_id, name, description,
	price_cents, image_url, is_available, position, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.SubcategoryID, &m.Name, &m.Description,
		&m.PriceCents, &m.ImageURL, &m.IsAvailable, &m.Position, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuItemRepo) Create(ctx context.Context, m *domain.MenuItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO menu_items (id, restaurant_id, category_id, subcategory_id, name, description,
		 price_cents, image_url, is_available, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.RestaurantID, m.CategoryID, m.SubcategoryID, m.Name, m.Description,
		m.PriceCents, m.ImageURL, m.IsAvailable, m.Position, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("menuItemRepo.Create: %w", err)
	}

	return nil
}

func (r *MenuItemRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error) {
	m, err := scanMenuItem(r.pool.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("menuItemRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("menuItemRepo.GetByID: %w", err)
	}

	return m, nil
}

func (r *MenuItemRepo) List(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	return r.list(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE restaurant_id = $1 ORDER BY position, created_at`,
		restaurantID)
}

func (r *MenuItemRepo) ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.MenuItem, error) {
	return r.list(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items
		 WHERE restaurant_id = $1 AND category_id = $2 ORDER BY position, created_at`,
		restaurantID, categoryID)
}

func (r *MenuItemRepo) ListAvailable(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	return r.list(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items
		 WHERE restaurant_id = $1 AND is_available = TRUE ORDER BY position, created_at`,
		restaurantID)
}

func (r *MenuItemRepo) list(ctx context.Context, query string, args ...any) ([]*domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("menuItemRepo.list: %w", err)
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("menuItemRepo.list: scan: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("menuItemRepo.list: rows: %w", err)
	}

	return items, nil
}

func (r *MenuItemRepo) Update(ctx context.Context, m *domain.MenuItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE menu_items SET category_id = $1, subcategory_id = $2, name = $3, description = $4,
		 price_cents = $5, image_url = $6, is_available = $7, position = $8, updated_at = now()
		 WHERE restaurant_id = $9 AND id = $10`,
		m.CategoryID, m.SubcategoryID, m.Name, m.Description,
		m.PriceCents, m.ImageURL, m.IsAvailable, m.Position, m.RestaurantID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("menuItemRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menuItemRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuItemRepo) SetImageURL(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE menu_items SET image_url = $1, updated_at = now() WHERE restaurant_id = $2 AND id = $3`,
		imageURL, restaurantID, id,
	)
	if err != nil {
		return fmt.Errorf("menuItemRepo.SetImageURL: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menuItemRepo.SetImageURL: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuItemRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("menuItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menuItemRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
