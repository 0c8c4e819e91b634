package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// ProfessionalRepository provides access to professional-related database operations
type ProfessionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository creates a new professional repository instance
func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// Create inserts a new professional
func (r *ProfessionalRepository) Create(ctx context.Context, pro *models.Professional) error {
	return r.db.WithContext(ctx).Create(pro).Error
}

// GetByID retrieves a professional by their ID
func (r *ProfessionalRepository) GetByID(ctx context.Context, id uint) (*models.Professional, error) {
	var pro models.Professional
	if err := r.db.WithContext(ctx).First(&pro, id).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

// Update persists the full professional, re-running model hooks so
// location sanitization applies to updates as well as creates.
func (r *ProfessionalRepository) Update(ctx context.Context, pro *models.Professional) error {
	res := r.db.WithContext(ctx).Model(pro).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(pro)
	if res.Error != nil {
		return fmt.Errorf("failed to update professional: %w", res.Error)
	}
	return nil
}

// UpdateRating stores the recomputed aggregate rating for a professional
func (r *ProfessionalRepository) UpdateRating(ctx context.Context, id uint, rating float64, count int) error {
	return r.db.WithContext(ctx).Model(&models.Professional{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "rating_count": count}).Error
}

// List returns a page of professionals, optionally filtered by category
func (r *ProfessionalRepository) List(ctx context.Context, category string, opts *models.ListOptions) ([]models.Professional, error) {
	var pros []models.Professional
	db := r.db.WithContext(ctx).Model(&models.Professional{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Limit(opts.Limit).Offset(opts.Offset).
		Order("rating DESC").
		Find(&pros).Error
	return pros, err
}
