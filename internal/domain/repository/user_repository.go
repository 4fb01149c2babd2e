package repository

import "github.com/dkurvas/almacen-api/internal/domain/entity"

// UserRepository puerto de usuarios (actores de los movimientos).
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
