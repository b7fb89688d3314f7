package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kanzie/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

// NewCategoryRepository returns a domain.CategoryRepository implemented with Postgres.
func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) GetByPlaceType(ctx context.Context, placeType string) (*domain.Category, error) {
	c := &domain.Category{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, icon, place_type FROM categories WHERE place_type = $1`, placeType,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.PlaceType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
