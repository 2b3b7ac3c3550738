package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"yulebook/internal/models"
)

const menuItemColumns = `id, name, type, description, price, surcharge, subcategory, available, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...any) error }) (models.MenuItem, error) {
	var item models.MenuItem
	var description, subcategory sql.NullString
	err := row.Scan(
		&item.ID, &item.Name, &item.Type, &description, &item.Price,
		&item.Surcharge, &subcategory, &item.Available, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return item, err
	}
	item.Description = description.String
	item.Subcategory = subcategory.String
	return item, nil
}

func (db *DB) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	query := `INSERT INTO menu_items (name, type, description, price, surcharge, subcategory, available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Type, item.Description, item.Price,
		item.Surcharge, nullable(item.Subcategory), item.Available, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ?`
	item, err := scanMenuItem(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

// GetMenuItems returns the catalog ordered by course type then name.
// With onlyAvailable set, unavailable dishes are excluded.
func (db *DB) GetMenuItems(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	if onlyAvailable {
		query += ` WHERE available = 1`
	}
	query += ` ORDER BY type, name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMenuItemsByIDs batch-fetches the given ids in one query. Unknown ids are
// simply absent from the result map.
func (db *DB) GetMenuItemsByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	out := make(map[int64]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id IN (` + placeholders + `)`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		out[item.ID] = item
	}
	return out, rows.Err()
}

func (db *DB) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	query := `UPDATE menu_items SET name = ?, type = ?, description = ?, price = ?, surcharge = ?, subcategory = ?, available = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Type, item.Description, item.Price,
		item.Surcharge, nullable(item.Subcategory), item.Available, now, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	item.UpdatedAt = now
	return nil
}

func (db *DB) DeleteMenuItem(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountMenuItems(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

// SeedMenu inserts the given items when the catalog is empty. It is a no-op
// on a populated database so restarts never duplicate dishes.
func (db *DB) SeedMenu(ctx context.Context, items []models.MenuItem) error {
	count, err := db.CountMenuItems(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range items {
		if err := db.CreateMenuItem(ctx, &items[i]); err != nil {
			return err
		}
	}

	db.logger.Info().Int("items", len(items)).Msg("menu seeded")
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
