package repos

import (
	"time"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestPayoutCreateComputesNetAmount() {
	pro := s.createTestProfessional()
	payout := &models.Payout{
		ProfessionalID: pro.ID,
		Amount:         720,
		ProcessingFee:  20,
		// Stale value the hook must overwrite
		NetAmount: 1,
	}
	s.Require().NoError(s.payoutRepo.Create(s.ctx, payout))

	stored, err := s.payoutRepo.GetByID(s.ctx, payout.ID)
	s.Require().NoError(err)
	s.Equal(700.0, stored.NetAmount)
	s.Equal(models.PayoutStatusPending, stored.Status)
}

func (s *DBRepositoryTestSuite) TestPayoutUpdateStatus() {
	pro := s.createTestProfessional()
	payout := s.createTestPayout(pro.ID)

	processedAt := time.Now().UTC().Truncate(time.Second)
	err := s.payoutRepo.UpdateStatus(s.ctx, payout.ID, models.PayoutStatusCompleted, &processedAt)
	s.Require().NoError(err)

	stored, err := s.payoutRepo.GetByID(s.ctx, payout.ID)
	s.Require().NoError(err)
	s.Equal(models.PayoutStatusCompleted, stored.Status)
	s.Require().NotNil(stored.ProcessedAt)
	s.WithinDuration(processedAt, *stored.ProcessedAt, time.Second)
}

func (s *DBRepositoryTestSuite) TestPayoutUpdateStatusNotFound() {
	err := s.payoutRepo.UpdateStatus(s.ctx, 999999, models.PayoutStatusCompleted, nil)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DBRepositoryTestSuite) TestPayoutListByProfessional() {
	pro := s.createTestProfessional()
	other := s.createTestProfessional()

	s.createTestPayout(pro.ID)
	s.createTestPayout(pro.ID)
	s.createTestPayout(other.ID)

	payouts, err := s.payoutRepo.ListByProfessional(s.ctx, pro.ID, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Len(payouts, 2)
	for _, p := range payouts {
		s.Equal(pro.ID, p.ProfessionalID)
	}
}
