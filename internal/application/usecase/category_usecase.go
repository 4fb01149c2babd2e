package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List() ([]*entity.Category, error) {
	return uc.repo.List()
}
