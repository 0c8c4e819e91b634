package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// PayoutRepository provides access to payout-related database operations
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository instance
func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// Create inserts a new payout
func (r *PayoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// GetByID retrieves a payout by its ID
func (r *PayoutRepository) GetByID(ctx context.Context, id uint) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.WithContext(ctx).First(&payout, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}
	return &payout, nil
}

// Save persists the full payout, re-running model hooks so derived
// fields are recomputed.
func (r *PayoutRepository) Save(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Save(payout).Error
}

// UpdateStatus sets the processing status of a payout
func (r *PayoutRepository) UpdateStatus(ctx context.Context, id uint, status models.PayoutStatus, processedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if processedAt != nil {
		updates["processed_at"] = processedAt
	}
	res := r.db.WithContext(ctx).Model(&models.Payout{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProfessional returns a page of payouts for a professional, newest first
func (r *PayoutRepository) ListByProfessional(ctx context.Context, professionalID uint, opts *models.ListOptions) ([]models.Payout, error) {
	var payouts []models.Payout
	db := r.db.WithContext(ctx).Model(&models.Payout{})
	if professionalID != 0 {
		db = db.Where("professional_id = ?", professionalID)
	}
	err := db.Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&payouts).Error
	return payouts, err
}
