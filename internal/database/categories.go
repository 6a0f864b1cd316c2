package database

import (
	"database/sql"
	"fmt"
)

// Category represents a row of the categorias table.
type Category struct {
	ID       int64   `json:"id_categoria"`
	Name     string  `json:"nome"`
	DayPrice float64 `json:"preco_dia"`
}

// ListCategories retrieves all vehicle categories.
func (db *DB) ListCategories() ([]Category, error) {
	rows, err := db.Query("SELECT id_categoria, nome, preco_dia FROM categorias")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c := Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.DayPrice); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory retrieves a category by ID. Returns nil when no row matches.
func (db *DB) GetCategory(id int64) (*Category, error) {
	c := &Category{}
	err := db.QueryRow(
		"SELECT id_categoria, nome, preco_dia FROM categorias WHERE id_categoria = ?", id,
	).Scan(&c.ID, &c.Name, &c.DayPrice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a category row. Used by tests and seeding; the API
// exposes categories read-only.
func (db *DB) CreateCategory(c *Category) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO categorias (nome, preco_dia) VALUES (?, ?)", c.Name, c.DayPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}
	return id, nil
}
