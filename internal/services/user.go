package services

import (
	"context"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
)

// User provides business logic for customer account operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository) *User {
	return &User{repo: repo}
}

// CreateUser creates a new user and returns its ID
func (s *User) CreateUser(ctx context.Context, user *models.User) (uint, error) {
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by their ID
func (s *User) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "user %d", id)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username
func (s *User) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err, "user %q", username)
	}
	return user, nil
}

// UpdateUser persists changes to a user, sanitizing the location point
func (s *User) UpdateUser(ctx context.Context, user *models.User) error {
	return s.repo.UpdateUser(ctx, user)
}

// GetAllUsers retrieves a page of users
func (s *User) GetAllUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetAllUsers(ctx, opts)
}

// DeleteUser soft-deletes a user by their ID
func (s *User) DeleteUser(ctx context.Context, id uint) error {
	return mapNotFound(s.repo.DeleteUser(ctx, id), "user %d", id)
}
