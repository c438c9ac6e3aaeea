package repository

import "github.com/yourusername/auth-api/internal/domain/entity"

// UserRepository defines access to the durable user store.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
