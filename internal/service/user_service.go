package service

import (
	"fmt"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
)

// UserService exposes read access to user profiles.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo repository.UserRepository) (*UserService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &UserService{userRepo: userRepo}, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
