package repos

import (
	"time"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *DBRepositoryTestSuite) TestJobCreateSeedsPendingHistory() {
	customerID := s.randomID()
	job := &models.Job{
		CustomerID: customerID,
		Title:      "Rewire living room sockets",
		Category:   "Electrical",
		// Anything the caller claims about lifecycle state is discarded
		Status: models.JobStatusCompleted,
		StatusHistory: models.StatusHistory{
			{Status: models.JobStatusCompleted, ChangedAt: time.Now()},
		},
	}

	err := s.jobRepo.Create(s.ctx, job)
	s.Require().NoError(err)
	s.NotZero(job.ID)

	stored, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusPending, stored.Status)
	s.Require().Len(stored.StatusHistory, 1)
	s.Equal(models.JobStatusPending, stored.StatusHistory[0].Status)
	s.Equal(models.CustomerRef(customerID), stored.StatusHistory[0].ChangedBy)
}

func (s *DBRepositoryTestSuite) TestJobCreateRejectsInvalid() {
	err := s.jobRepo.Create(s.ctx, &models.Job{CustomerID: 1, Category: "Plumbing"})
	s.Error(err, "missing title should be rejected")

	err = s.jobRepo.Create(s.ctx, &models.Job{CustomerID: 1, Title: "t", Category: "Wizardry"})
	s.Error(err, "unknown category should be rejected")
}

func (s *DBRepositoryTestSuite) TestJobGetByIDNotFound() {
	_, err := s.jobRepo.GetByID(s.ctx, 999999)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DBRepositoryTestSuite) TestJobUpdateBumpsVersion() {
	job := s.createTestJob()
	s.Equal(0, job.Version)

	job.Status = models.JobStatusAccepted
	job.AppendHistory(models.JobStatusAccepted, models.ProfessionalRef(3), "", time.Now().UTC())
	err := s.jobRepo.Update(s.ctx, job)
	s.Require().NoError(err)
	s.Equal(1, job.Version)

	stored, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.Version)
	s.Equal(models.JobStatusAccepted, stored.Status)
	s.Len(stored.StatusHistory, 2)
}

func (s *DBRepositoryTestSuite) TestJobUpdateStaleVersionConflicts() {
	job := s.createTestJob()

	// Two actors read the same version
	first, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	second, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)

	first.Status = models.JobStatusAccepted
	s.Require().NoError(s.jobRepo.Update(s.ctx, first))

	second.Status = models.JobStatusCancelled
	err = s.jobRepo.Update(s.ctx, second)
	s.ErrorIs(err, ErrVersionConflict)
	s.Equal(0, second.Version, "failed update must not advance the in-memory version")

	stored, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusAccepted, stored.Status, "losing write must not land")
}

func (s *DBRepositoryTestSuite) TestJobUpdatePersistsZeroValues() {
	job := s.createTestJob()
	job.LocationPoint = &models.GeoPoint{Type: "Point", Coordinates: []float64{77.59, 12.97}}
	s.Require().NoError(s.jobRepo.Update(s.ctx, job))

	stored, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.LocationPoint)

	// Clearing the point writes NULL rather than keeping the old value
	stored.LocationPoint = nil
	s.Require().NoError(s.jobRepo.Update(s.ctx, stored))

	reloaded, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Nil(reloaded.LocationPoint)
}

func (s *DBRepositoryTestSuite) TestJobUpdateSanitizesMalformedPoint() {
	job := s.createTestJob()
	job.LocationPoint = &models.GeoPoint{Type: "Point", Coordinates: []float64{77.59}}
	s.Require().NoError(s.jobRepo.Update(s.ctx, job))

	stored, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Nil(stored.LocationPoint, "a partial point must be unset, not stored broken")
}

func (s *DBRepositoryTestSuite) TestJobListAndCountFilters() {
	customerID := s.randomID()
	proID := s.randomID()

	plumbing := s.createTestJobForCustomer(customerID)

	electrical := &models.Job{
		CustomerID: customerID,
		Title:      "Replace fuse box",
		Category:   "Electrical",
	}
	s.Require().NoError(s.jobRepo.Create(s.ctx, electrical))
	electrical.Status = models.JobStatusAccepted
	electrical.ProfessionalID = &proID
	s.Require().NoError(s.jobRepo.Update(s.ctx, electrical))

	// A job for an unrelated customer must never leak into the listing
	s.createTestJob()

	opts := &models.ListOptions{Limit: 10}

	jobs, err := s.jobRepo.List(s.ctx, JobFilter{CustomerID: customerID}, opts)
	s.Require().NoError(err)
	s.Len(jobs, 2)

	jobs, err = s.jobRepo.List(s.ctx, JobFilter{CustomerID: customerID, Status: models.JobStatusPending}, opts)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal(plumbing.ID, jobs[0].ID)

	jobs, err = s.jobRepo.List(s.ctx, JobFilter{CustomerID: customerID, Category: "Electrical"}, opts)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal(electrical.ID, jobs[0].ID)

	jobs, err = s.jobRepo.List(s.ctx, JobFilter{ProfessionalID: proID}, opts)
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Equal(electrical.ID, jobs[0].ID)

	count, err := s.jobRepo.Count(s.ctx, JobFilter{CustomerID: customerID})
	s.Require().NoError(err)
	s.EqualValues(2, count)

	count, err = s.jobRepo.Count(s.ctx, JobFilter{CustomerID: customerID, Status: models.JobStatusAccepted})
	s.Require().NoError(err)
	s.EqualValues(1, count)
}
