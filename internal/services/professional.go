package services

import (
	"context"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
)

// ProfessionalService provides business logic for provider accounts
type ProfessionalService struct {
	repo *repos.ProfessionalRepository
}

// NewProfessionalService creates a new professional service instance
func NewProfessionalService(repo *repos.ProfessionalRepository) *ProfessionalService {
	return &ProfessionalService{repo: repo}
}

// Create registers a new professional and returns its ID
func (s *ProfessionalService) Create(ctx context.Context, pro *models.Professional) (uint, error) {
	if err := s.repo.Create(ctx, pro); err != nil {
		return 0, err
	}
	return pro.ID, nil
}

// GetByID retrieves a professional by their ID
func (s *ProfessionalService) GetByID(ctx context.Context, id uint) (*models.Professional, error) {
	pro, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "professional %d", id)
	}
	return pro, nil
}

// Update persists changes to a professional, sanitizing the location point
func (s *ProfessionalService) Update(ctx context.Context, pro *models.Professional) error {
	return s.repo.Update(ctx, pro)
}

// List returns a page of professionals, optionally filtered by category
func (s *ProfessionalService) List(ctx context.Context, category string, opts *models.ListOptions) ([]models.Professional, error) {
	return s.repo.List(ctx, category, opts)
}
