package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// JobFilter narrows job listing queries
type JobFilter struct {
	Status         models.JobStatus
	CustomerID     uint
	ProfessionalID uint
	Category       string
}

// JobRepository provides access to job-related database operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job. The status is forced to pending and the
// history is seeded with a single synthetic pending entry, regardless
// of anything the caller filled in.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	job.SeedHistory(time.Now().UTC())
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by its ID
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// Update persists the full job document conditioned on the version the
// caller read. Status changes and their history appends always land in
// the same save, so a transition is never observable half-applied. A
// stale version returns ErrVersionConflict and writes nothing.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	readVersion := job.Version
	job.Version = readVersion + 1

	res := r.db.WithContext(ctx).Model(job).
		Where("id = ? AND version = ?", job.ID, readVersion).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(job)
	if res.Error != nil {
		job.Version = readVersion
		return fmt.Errorf("failed to update job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		job.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

// List returns a page of jobs matching the filter, newest first
func (r *JobRepository) List(ctx context.Context, filter JobFilter, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job

	db := r.db.WithContext(ctx).Model(&models.Job{})
	db = applyJobFilter(db, filter)
	if opts.IncludeDeleted {
		db = db.Unscoped()
	}

	err := db.Limit(opts.Limit).Offset(opts.Offset).
		Order(models.JobCreatedAtField + " DESC").
		Find(&jobs).Error
	return jobs, err
}

// Count returns the number of jobs matching the filter
func (r *JobRepository) Count(ctx context.Context, filter JobFilter) (int64, error) {
	var count int64
	db := applyJobFilter(r.db.WithContext(ctx).Model(&models.Job{}), filter)
	err := db.Count(&count).Error
	return count, err
}

func applyJobFilter(db *gorm.DB, filter JobFilter) *gorm.DB {
	if filter.Status != "" && filter.Status != models.JobStatusUnknown {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != models.AdminID {
		db = db.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.ProfessionalID != 0 {
		db = db.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	return db
}
