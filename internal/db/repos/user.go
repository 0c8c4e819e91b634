package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// UserRepository provides access to user-related database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by their ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(&models.User{Username: username}).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists the full user, re-running model hooks so location
// sanitization applies to updates as well as creates.
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	return nil
}

// GetAllUsers retrieves a page of users
func (r *UserRepository) GetAllUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// DeleteUser soft-deletes a user by their ID
func (r *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
