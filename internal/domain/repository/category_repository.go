package repository

import "github.com/dkurvas/almacen-api/internal/domain/entity"

// CategoryRepository puerto de categorías del catálogo.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
