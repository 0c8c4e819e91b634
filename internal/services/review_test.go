package services

import (
	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestCreateReview() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	review, err := s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, 5, "quick and tidy")
	s.Require().NoError(err)
	s.Equal(job.ID, review.JobID)
	s.Equal(pro.ID, review.ProfessionalID)
	s.Equal(5, review.Rating)

	// The professional's aggregate rating is recomputed
	stored, err := s.proRepo.GetByID(s.ctx, pro.ID)
	s.Require().NoError(err)
	s.Equal(5.0, stored.Rating)
	s.Equal(1, stored.RatingCount)
}

func (s *ServiceTestSuite) TestCreateReviewOncePerJob() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, 4, "")
	s.Require().NoError(err)

	_, err = s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, 1, "changed my mind")
	s.ErrorIs(err, ErrConflict)
}

func (s *ServiceTestSuite) TestCreateReviewGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, 0, "")
	s.ErrorIs(err, ErrValidation)
	_, err = s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, 6, "")
	s.ErrorIs(err, ErrValidation)

	_, err = s.reviewSvc.CreateReview(s.ctx, job.ID, customerID+1, 3, "")
	s.ErrorIs(err, ErrValidation)

	_, err = s.reviewSvc.CreateReview(s.ctx, 999999, customerID, 3, "")
	s.ErrorIs(err, ErrNotFound)

	// Only finished work can be rated
	pending := s.createJob(customerID, "cash", nil)
	_, err = s.reviewSvc.CreateReview(s.ctx, pending.ID, customerID, 3, "")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestAverageRatingAcrossJobs() {
	customerID := s.randomID()
	pro := s.createProfessional()

	for _, rating := range []int{5, 4} {
		job := s.createJob(customerID, "cash", nil)
		_, err := s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "")
		s.Require().NoError(err)
		_, err = s.jobSvc.StartJob(s.ctx, job.ID, pro.ID, "")
		s.Require().NoError(err)
		_, err = s.jobSvc.CompleteJob(s.ctx, job.ID, pro.ID, nil, "")
		s.Require().NoError(err)

		_, err = s.reviewSvc.CreateReview(s.ctx, job.ID, customerID, rating, "")
		s.Require().NoError(err)
	}

	stored, err := s.proRepo.GetByID(s.ctx, pro.ID)
	s.Require().NoError(err)
	s.InDelta(4.5, stored.Rating, 0.001)
	s.Equal(2, stored.RatingCount)

	reviews, err := s.reviewSvc.ListByProfessional(s.ctx, pro.ID, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Len(reviews, 2)
}
