package repository

import (
	"database/sql"
	"fmt"

	"campusccms/models"
)

// CategoryRepository handles database operations for complaint categories.
// Categories are read-only reference data from the engine's perspective;
// rows are seeded at startup.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves all categories in insertion order.
func (r *CategoryRepository) List() ([]models.Category, error) {
	rows, err := r.db.Query(`
		SELECT category_id, name, description, created_at
		FROM complaint_categories
		ORDER BY category_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetName returns the category name, or models.ErrNotFound.
func (r *CategoryRepository) GetName(categoryID int64) (string, error) {
	var name string
	err := r.db.QueryRow(`SELECT name FROM complaint_categories WHERE category_id = ?`, categoryID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get category name: %w", err)
	}
	return name, nil
}
