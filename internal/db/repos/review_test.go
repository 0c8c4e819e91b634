package repos

import (
	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *DBRepositoryTestSuite) createTestReview(jobID, professionalID uint, rating int) *models.Review {
	review := &models.Review{
		JobID:          jobID,
		CustomerID:     s.randomID(),
		ProfessionalID: professionalID,
		Rating:         rating,
	}
	s.Require().NoError(s.reviewRepo.Create(s.ctx, review))
	return review
}

func (s *DBRepositoryTestSuite) TestReviewOnePerJob() {
	pro := s.createTestProfessional()
	jobID := s.randomID()
	s.createTestReview(jobID, pro.ID, 5)

	err := s.reviewRepo.Create(s.ctx, &models.Review{
		JobID:          jobID,
		CustomerID:     1,
		ProfessionalID: pro.ID,
		Rating:         1,
	})
	s.Error(err, "second review for the same job must be rejected")
}

func (s *DBRepositoryTestSuite) TestReviewGetByJobID() {
	pro := s.createTestProfessional()
	jobID := s.randomID()
	created := s.createTestReview(jobID, pro.ID, 4)

	stored, err := s.reviewRepo.GetByJobID(s.ctx, jobID)
	s.Require().NoError(err)
	s.Equal(created.ID, stored.ID)

	_, err = s.reviewRepo.GetByJobID(s.ctx, 999999)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DBRepositoryTestSuite) TestReviewAverageRating() {
	pro := s.createTestProfessional()
	s.createTestReview(s.randomID(), pro.ID, 5)
	s.createTestReview(s.randomID(), pro.ID, 4)
	s.createTestReview(s.randomID(), pro.ID, 3)

	avg, count, err := s.reviewRepo.AverageRating(s.ctx, pro.ID)
	s.Require().NoError(err)
	s.Equal(3, count)
	s.InDelta(4.0, avg, 0.001)

	avg, count, err = s.reviewRepo.AverageRating(s.ctx, 999999)
	s.Require().NoError(err)
	s.Zero(count)
	s.Zero(avg)
}

func (s *DBRepositoryTestSuite) TestNotificationListAndMarkRead() {
	recipientID := s.randomID()

	n := &models.Notification{
		RecipientID:   recipientID,
		RecipientRole: models.ActorRoleProfessional,
		Type:          models.NotificationJobAccepted,
	}
	s.Require().NoError(s.notificationRepo.Create(s.ctx, n))

	// Same ID under a different role must not surface
	s.Require().NoError(s.notificationRepo.Create(s.ctx, &models.Notification{
		RecipientID:   recipientID,
		RecipientRole: models.ActorRoleCustomer,
		Type:          models.NotificationJobCompleted,
	}))

	list, err := s.notificationRepo.ListByRecipient(s.ctx, recipientID, models.ActorRoleProfessional, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.False(list[0].Read)

	s.Require().NoError(s.notificationRepo.MarkRead(s.ctx, list[0].ID))

	list, err = s.notificationRepo.ListByRecipient(s.ctx, recipientID, models.ActorRoleProfessional, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.True(list[0].Read)

	s.ErrorIs(s.notificationRepo.MarkRead(s.ctx, 999999), gorm.ErrRecordNotFound)
}
