package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
)

// Payout provides business logic for professional payouts
type Payout struct {
	payoutRepo *repos.PayoutRepository
	proRepo    *repos.ProfessionalRepository
	notifier   *Notifier
}

// NewPayoutService creates a new payout service instance
func NewPayoutService(payoutRepo *repos.PayoutRepository, proRepo *repos.ProfessionalRepository, notifier *Notifier) *Payout {
	return &Payout{payoutRepo: payoutRepo, proRepo: proRepo, notifier: notifier}
}

// CreatePayout queues a transfer of provider earnings. The bank account
// is snapshotted from the professional's current details so later edits
// do not rewrite where the money went, and the net amount is derived
// before the row is written.
func (s *Payout) CreatePayout(ctx context.Context, professionalID uint, amount, processingFee float64) (*models.Payout, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be positive", ErrValidation)
	}
	if processingFee < 0 {
		return nil, fmt.Errorf("%w: processing fee cannot be negative", ErrValidation)
	}

	pro, err := s.proRepo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, mapNotFound(err, "professional %d", professionalID)
	}

	payout := &models.Payout{
		ProfessionalID: professionalID,
		Amount:         amount,
		ProcessingFee:  processingFee,
		Status:         models.PayoutStatusPending,
		Reference:      uuid.NewString(),
		BankAccount:    pro.BankAccount,
	}
	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to create payout: %w", err)
	}
	return payout, nil
}

// GetPayout retrieves a payout by its ID
func (s *Payout) GetPayout(ctx context.Context, id uint) (*models.Payout, error) {
	payout, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "payout %d", id)
	}
	return payout, nil
}

// UpdatePayoutStatus moves a payout through its processing states
func (s *Payout) UpdatePayoutStatus(ctx context.Context, id uint, status models.PayoutStatus) (*models.Payout, error) {
	parsed, err := models.ParsePayoutStatus(status.String())
	if err != nil || parsed == models.PayoutStatusUnknown {
		return nil, fmt.Errorf("%w: invalid payout status %q", ErrValidation, status)
	}

	var processedAt *time.Time
	if parsed == models.PayoutStatusCompleted || parsed == models.PayoutStatusFailed {
		now := time.Now().UTC()
		processedAt = &now
	}

	if err := s.payoutRepo.UpdateStatus(ctx, id, parsed, processedAt); err != nil {
		return nil, mapNotFound(err, "payout %d", id)
	}

	payout, err := s.GetPayout(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, payout.ProfessionalID, models.ActorRoleProfessional, models.NotificationPayoutUpdated, payout)
	return payout, nil
}

// ListPayouts returns a page of payouts for a professional
func (s *Payout) ListPayouts(ctx context.Context, professionalID uint, opts *models.ListOptions) ([]models.Payout, error) {
	return s.payoutRepo.ListByProfessional(ctx, professionalID, opts)
}
