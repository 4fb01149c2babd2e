package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `INSERT INTO categories (id, name, description, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Description, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
