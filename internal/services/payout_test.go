package services

import (
	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestCreatePayoutSnapshotsBankAccount() {
	pro := s.createProfessional()

	payout, err := s.payoutSvc.CreatePayout(s.ctx, pro.ID, 720, 20)
	s.Require().NoError(err)
	s.Equal(models.PayoutStatusPending, payout.Status)
	s.Equal(700.0, payout.NetAmount)
	s.NotEmpty(payout.Reference)
	s.Equal(pro.BankAccount, payout.BankAccount)

	// Later edits to the professional must not rewrite the snapshot
	pro.BankAccount.AccountNumber = "999999999999"
	s.Require().NoError(s.proRepo.Update(s.ctx, pro))

	stored, err := s.payoutSvc.GetPayout(s.ctx, payout.ID)
	s.Require().NoError(err)
	s.Equal("000123456789", stored.BankAccount.AccountNumber)
}

func (s *ServiceTestSuite) TestCreatePayoutValidation() {
	pro := s.createProfessional()

	_, err := s.payoutSvc.CreatePayout(s.ctx, pro.ID, 0, 0)
	s.ErrorIs(err, ErrValidation)

	_, err = s.payoutSvc.CreatePayout(s.ctx, pro.ID, 100, -1)
	s.ErrorIs(err, ErrValidation)

	_, err = s.payoutSvc.CreatePayout(s.ctx, 999999, 100, 0)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestUpdatePayoutStatus() {
	pro := s.createProfessional()
	payout, err := s.payoutSvc.CreatePayout(s.ctx, pro.ID, 720, 20)
	s.Require().NoError(err)

	updated, err := s.payoutSvc.UpdatePayoutStatus(s.ctx, payout.ID, models.PayoutStatusProcessing)
	s.Require().NoError(err)
	s.Equal(models.PayoutStatusProcessing, updated.Status)
	s.Nil(updated.ProcessedAt)

	// Terminal outcomes stamp the processing time
	updated, err = s.payoutSvc.UpdatePayoutStatus(s.ctx, payout.ID, models.PayoutStatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.PayoutStatusCompleted, updated.Status)
	s.NotNil(updated.ProcessedAt)
}

func (s *ServiceTestSuite) TestUpdatePayoutStatusGuards() {
	_, err := s.payoutSvc.UpdatePayoutStatus(s.ctx, 999999, models.PayoutStatusCompleted)
	s.ErrorIs(err, ErrNotFound)

	pro := s.createProfessional()
	payout, err := s.payoutSvc.CreatePayout(s.ctx, pro.ID, 100, 0)
	s.Require().NoError(err)

	_, err = s.payoutSvc.UpdatePayoutStatus(s.ctx, payout.ID, models.PayoutStatus("bogus"))
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestUpdatePayoutStatusNotifiesProfessional() {
	pro := s.createProfessional()
	payout, err := s.payoutSvc.CreatePayout(s.ctx, pro.ID, 720, 20)
	s.Require().NoError(err)

	_, err = s.payoutSvc.UpdatePayoutStatus(s.ctx, payout.ID, models.PayoutStatusCompleted)
	s.Require().NoError(err)

	list, err := s.notifier.ListForRecipient(s.ctx, pro.ID, models.ActorRoleProfessional, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().NotEmpty(list)
	s.Equal(models.NotificationPayoutUpdated, list[0].Type)
}
