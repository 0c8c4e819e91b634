package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// ReviewRepository provides access to review-related database operations
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByJobID retrieves the review for a job, if one exists
func (r *ReviewRepository) GetByJobID(ctx context.Context, jobID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProfessional returns a page of reviews for a professional, newest first
func (r *ReviewRepository) ListByProfessional(ctx context.Context, professionalID uint, opts *models.ListOptions) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRating computes the average rating and review count for a professional
func (r *ReviewRepository) AverageRating(ctx context.Context, professionalID uint) (float64, int, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("professional_id = ?", professionalID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, int(result.Count), nil
}
