package service

import "github.com/car4me/car4me/internal/database"

// Categories exposes the vehicle category reference data, read-only.
type Categories struct {
	db *database.DB
}

// NewCategories creates the category resource service.
func NewCategories(db *database.DB) *Categories {
	return &Categories{db: db}
}

// List returns all categories.
func (s *Categories) List() ([]database.Category, error) {
	categories, err := s.db.ListCategories()
	if err != nil {
		return nil, Store(err)
	}
	return categories, nil
}

// Get returns one category.
func (s *Categories) Get(id int64) (*database.Category, error) {
	c, err := s.db.GetCategory(id)
	if err != nil {
		return nil, Store(err)
	}
	if c == nil {
		return nil, NotFound("Categoria não encontrada")
	}
	return c, nil
}
