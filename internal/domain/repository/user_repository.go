package repository

import "github.com/kdiallo/stockpilot-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByLogin(login string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id string) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
