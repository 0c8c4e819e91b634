package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
)

// Review provides business logic for rating completed jobs
type Review struct {
	reviewRepo *repos.ReviewRepository
	jobRepo    *repos.JobRepository
	proRepo    *repos.ProfessionalRepository
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo *repos.ReviewRepository, jobRepo *repos.JobRepository, proRepo *repos.ProfessionalRepository) *Review {
	return &Review{reviewRepo: reviewRepo, jobRepo: jobRepo, proRepo: proRepo}
}

// CreateReview rates a completed job. Only the job's customer may
// review, only once per job, and the professional's aggregate rating is
// recomputed afterwards.
func (s *Review) CreateReview(ctx context.Context, jobID, customerID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapNotFound(err, "job %d", jobID)
	}
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("%w: only completed jobs can be reviewed", ErrIllegalState)
	}
	if job.CustomerID != customerID {
		return nil, fmt.Errorf("%w: only the job's customer can review it", ErrValidation)
	}
	if job.ProfessionalID == nil {
		return nil, fmt.Errorf("%w: job %d has no assigned professional", ErrIllegalState, jobID)
	}

	if _, err := s.reviewRepo.GetByJobID(ctx, jobID); err == nil {
		return nil, fmt.Errorf("%w: job %d is already reviewed", ErrConflict, jobID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		JobID:          jobID,
		CustomerID:     customerID,
		ProfessionalID: *job.ProfessionalID,
		Rating:         rating,
		Comment:        comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if avg, count, err := s.reviewRepo.AverageRating(ctx, review.ProfessionalID); err == nil {
		_ = s.proRepo.UpdateRating(ctx, review.ProfessionalID, avg, count)
	}
	return review, nil
}

// ListByProfessional returns a page of reviews for a professional
func (s *Review) ListByProfessional(ctx context.Context, professionalID uint, opts *models.ListOptions) ([]models.Review, error) {
	return s.reviewRepo.ListByProfessional(ctx, professionalID, opts)
}
