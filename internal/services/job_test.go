package services

import (
	"time"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestCreateJobDefaults() {
	customerID := s.randomID()
	job, err := s.jobSvc.CreateJob(s.ctx, &CreateJobRequest{
		CustomerID: customerID,
		Title:      "Paint the fence",
		Category:   "Painting",
	})
	s.Require().NoError(err)

	s.Equal(models.JobStatusPending, job.Status)
	s.Equal(models.JobPriorityMedium, job.Priority)
	s.Equal(models.PaymentMethodCash, job.PaymentMethod)
	s.Equal(models.PaymentStatusUnpaid, job.PaymentStatus)
	s.Require().Len(job.StatusHistory, 1)
	s.Equal(models.CustomerRef(customerID), job.StatusHistory[0].ChangedBy)
}

func (s *ServiceTestSuite) TestCreateJobStripsMalformedPoint() {
	job, err := s.jobSvc.CreateJob(s.ctx, &CreateJobRequest{
		CustomerID:    s.randomID(),
		Title:         "Install ceiling fan",
		Category:      "Electrical",
		LocationPoint: &models.GeoPoint{Type: "Point", Coordinates: []float64{77.59}},
	})
	s.Require().NoError(err)

	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Nil(stored.LocationPoint)
}

func (s *ServiceTestSuite) TestCreateJobValidation() {
	tests := []struct {
		name string
		req  CreateJobRequest
	}{
		{"missing customer", CreateJobRequest{Title: "t", Category: "Plumbing"}},
		{"missing title", CreateJobRequest{CustomerID: 1, Category: "Plumbing"}},
		{"unknown category", CreateJobRequest{CustomerID: 1, Title: "t", Category: "Wizardry"}},
		{"bad priority", CreateJobRequest{CustomerID: 1, Title: "t", Category: "Plumbing", Priority: "yesterday"}},
		{"bad payment method", CreateJobRequest{CustomerID: 1, Title: "t", Category: "Plumbing", PaymentMethod: "barter"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.jobSvc.CreateJob(s.ctx, &tt.req)
			s.ErrorIs(err, ErrValidation)
		})
	}
}

func (s *ServiceTestSuite) TestGetJobNotFound() {
	_, err := s.jobSvc.GetJob(s.ctx, 999999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestLifecycleHappyPath() {
	customerID := s.randomID()
	pro := s.createProfessional()
	job := s.createJob(customerID, "cash", nil)

	job, err := s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "on my way")
	s.Require().NoError(err)
	s.Equal(models.JobStatusAccepted, job.Status)
	s.Require().NotNil(job.ProfessionalID)
	s.Equal(pro.ID, *job.ProfessionalID)

	job, err = s.jobSvc.StartJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, job.Status)

	job, err = s.jobSvc.CompleteJob(s.ctx, job.ID, pro.ID, floatPtr(800), "done")
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, job.Status)

	// Completion settles everything in one save
	s.Require().NotNil(job.Commission)
	s.Equal(80.0, job.Commission.CompanyFee)
	s.Equal(720.0, job.Commission.ProviderEarnings)
	s.Equal(0.10, job.Commission.CommissionRate)

	s.Require().NotNil(job.Invoice)
	s.NotEmpty(job.Invoice.Number)

	s.Equal(models.PaymentStatusCashPending, job.PaymentStatus)
	s.Require().NotNil(job.CashPaymentDetails)
	s.Equal(800.0, job.CashPaymentDetails.Amount)
	s.NotEmpty(job.CashPaymentDetails.VerificationCode)

	// Audit trail holds every state the job passed through, in order
	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.StatusHistory, 4)
	s.Equal(models.JobStatusPending, stored.StatusHistory[0].Status)
	s.Equal(models.JobStatusAccepted, stored.StatusHistory[1].Status)
	s.Equal(models.JobStatusInProgress, stored.StatusHistory[2].Status)
	s.Equal(models.JobStatusCompleted, stored.StatusHistory[3].Status)
	s.Equal("on my way", stored.StatusHistory[1].Notes)
}

func (s *ServiceTestSuite) TestIllegalTransitions() {
	pro := s.createProfessional()
	job := s.createJob(s.randomID(), "cash", nil)

	// A pending job cannot jump ahead
	_, err := s.jobSvc.Transition(s.ctx, job.ID, models.JobStatusInProgress, models.ProfessionalRef(pro.ID), "")
	s.ErrorIs(err, ErrIllegalState)
	_, err = s.jobSvc.Transition(s.ctx, job.ID, models.JobStatusCompleted, models.ProfessionalRef(pro.ID), "")
	s.ErrorIs(err, ErrIllegalState)

	// A failed transition writes nothing
	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusPending, stored.Status)
	s.Len(stored.StatusHistory, 1)
}

func (s *ServiceTestSuite) TestTransitionRejectsUnknownStatus() {
	job := s.createJob(s.randomID(), "cash", nil)
	_, err := s.jobSvc.Transition(s.ctx, job.ID, models.JobStatus("bogus"), models.AdminRef(0), "")
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestTerminalStatesAreFinal() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", nil)

	_, err := s.jobSvc.CancelJob(s.ctx, job.ID, models.CustomerRef(customerID), "changed my mind")
	s.ErrorIs(err, ErrIllegalState)

	cancelled := s.createJob(customerID, "cash", nil)
	_, err = s.jobSvc.CancelJob(s.ctx, cancelled.ID, models.CustomerRef(customerID), "")
	s.Require().NoError(err)
	_, err = s.jobSvc.Transition(s.ctx, cancelled.ID, models.JobStatusAccepted, models.AdminRef(0), "")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestCancelFromAnyNonTerminalState() {
	customerID := s.randomID()

	job, _ := s.startJob(customerID, "cash", nil)
	job, err := s.jobSvc.CancelJob(s.ctx, job.ID, models.CustomerRef(customerID), "")
	s.Require().NoError(err)
	s.Equal(models.JobStatusCancelled, job.Status)
}

func (s *ServiceTestSuite) TestCancelRequiresParty() {
	customerID := s.randomID()
	job := s.createJob(customerID, "cash", nil)

	_, err := s.jobSvc.CancelJob(s.ctx, job.ID, models.CustomerRef(customerID+1), "")
	s.ErrorIs(err, ErrValidation)

	// An unassigned professional is not a party either
	_, err = s.jobSvc.CancelJob(s.ctx, job.ID, models.ProfessionalRef(s.randomID()), "")
	s.ErrorIs(err, ErrValidation)

	// Admins may always cancel
	_, err = s.jobSvc.CancelJob(s.ctx, job.ID, models.AdminRef(0), "fraudulent posting")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAcceptUnknownProfessional() {
	job := s.createJob(s.randomID(), "cash", nil)
	_, err := s.jobSvc.AcceptJob(s.ctx, job.ID, 999999, "")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestStartRequiresAssignedProfessional() {
	pro := s.createProfessional()
	other := s.createProfessional()
	job := s.createJob(s.randomID(), "cash", nil)

	_, err := s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)

	_, err = s.jobSvc.StartJob(s.ctx, job.ID, other.ID, "")
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestDeclineBlocksLaterAccept() {
	pro := s.createProfessional()
	job := s.createJob(s.randomID(), "cash", nil)

	job, err := s.jobSvc.DeclineJob(s.ctx, job.ID, pro.ID)
	s.Require().NoError(err)
	s.True(job.DeclinedBy.Contains(pro.ID))

	// Declining twice is a no-op, not a second entry
	job, err = s.jobSvc.DeclineJob(s.ctx, job.ID, pro.ID)
	s.Require().NoError(err)
	s.Len(job.DeclinedBy, 1)

	_, err = s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestDeclineOnlyPendingJobs() {
	pro := s.createProfessional()
	job := s.createJob(s.randomID(), "cash", nil)
	_, err := s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)

	_, err = s.jobSvc.DeclineJob(s.ctx, job.ID, s.randomID())
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestAddTip() {
	customerID := s.randomID()
	job, pro := s.startJob(customerID, "cash", nil)

	_, err := s.jobSvc.AddTip(s.ctx, job.ID, customerID, -5)
	s.ErrorIs(err, ErrValidation)

	_, err = s.jobSvc.AddTip(s.ctx, job.ID, customerID+1, 50)
	s.ErrorIs(err, ErrValidation)

	job, err = s.jobSvc.AddTip(s.ctx, job.ID, customerID, 50)
	s.Require().NoError(err)
	s.Equal(50.0, job.TipAmount)

	// Completion issues the invoice, which closes the tip
	_, err = s.jobSvc.CompleteJob(s.ctx, job.ID, pro.ID, nil, "")
	s.Require().NoError(err)
	_, err = s.jobSvc.AddTip(s.ctx, job.ID, customerID, 100)
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestUpdateJob() {
	job := s.createJob(s.randomID(), "cash", nil)

	title := "Fix bathroom tap instead"
	updated, err := s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{
		Title:     &title,
		FixedRate: floatPtr(650),
	})
	s.Require().NoError(err)
	s.Equal(title, updated.Title)
	s.Require().NotNil(updated.FixedRate)
	s.Equal(650.0, *updated.FixedRate)
	// Untouched fields survive a partial update
	s.Equal("Plumbing", updated.Category)
	s.Equal("Bengaluru", updated.City)
}

func (s *ServiceTestSuite) TestUpdateJobLocationHandling() {
	job := s.createJob(s.randomID(), "cash", nil)

	updated, err := s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{
		LocationPoint: &models.GeoPoint{Type: "Point", Coordinates: []float64{77.59, 12.97}},
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.LocationPoint)

	// A malformed replacement clears the stored point instead of
	// persisting garbage or keeping the old value
	updated, err = s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{
		LocationPoint: &models.GeoPoint{Type: "Point", Coordinates: []float64{77.59}},
	})
	s.Require().NoError(err)

	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Nil(stored.LocationPoint)
}

func (s *ServiceTestSuite) TestUpdateJobTerminalRejected() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", nil)

	title := "too late"
	_, err := s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{Title: &title})
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestUpdateJobValidation() {
	job := s.createJob(s.randomID(), "cash", nil)

	empty := ""
	_, err := s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{Title: &empty})
	s.ErrorIs(err, ErrValidation)

	bad := "immediately"
	_, err = s.jobSvc.UpdateJob(s.ctx, job.ID, &UpdateJobRequest{Priority: &bad})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestCompletionNotifiesCustomer() {
	customerID := s.randomID()
	s.completeJob(customerID, "cash", nil)

	// Fire-and-forget notifications still land as rows
	list, err := s.notifier.ListForRecipient(s.ctx, customerID, models.ActorRoleCustomer, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().NotEmpty(list)

	types := make(map[models.NotificationType]bool)
	for _, n := range list {
		types[n.Type] = true
	}
	s.True(types[models.NotificationJobAccepted])
	s.True(types[models.NotificationJobStarted])
	s.True(types[models.NotificationJobCompleted])
}

func (s *ServiceTestSuite) TestTransitionCancelNotifiesCounterpartyOnly() {
	customerID := s.randomID()
	pro := s.createProfessional()
	job := s.createJob(customerID, "cash", nil)
	_, err := s.jobSvc.AcceptJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)

	// Cancelling through the raw transition endpoint must credit the
	// real actor: the customer who cancelled gets no notification, the
	// assigned professional does.
	_, err = s.jobSvc.Transition(s.ctx, job.ID, models.JobStatusCancelled, models.CustomerRef(customerID), "no longer needed")
	s.Require().NoError(err)

	customerList, err := s.notifier.ListForRecipient(s.ctx, customerID, models.ActorRoleCustomer, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	for _, n := range customerList {
		s.NotEqual(models.NotificationJobCancelled, n.Type)
	}

	proList, err := s.notifier.ListForRecipient(s.ctx, pro.ID, models.ActorRoleProfessional, &models.ListOptions{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(proList, 1)
	s.Equal(models.NotificationJobCancelled, proList[0].Type)
}

func (s *ServiceTestSuite) TestCompleteNegativeFinalPrice() {
	customerID := s.randomID()
	job, pro := s.startJob(customerID, "cash", nil)

	_, err := s.jobSvc.CompleteJob(s.ctx, job.ID, pro.ID, floatPtr(-1), "")
	s.ErrorIs(err, ErrValidation)

	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusInProgress, stored.Status)
}

func (s *ServiceTestSuite) TestOnlineJobSkipsCashReconciliation() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "online", floatPtr(600))

	s.Equal(models.PaymentStatusUnpaid, job.PaymentStatus)
	s.Nil(job.CashPaymentDetails)
	s.Require().NotNil(job.Invoice)
	s.Require().NotNil(job.Commission)
	s.Equal(60.0, job.Commission.CompanyFee)
}

func (s *ServiceTestSuite) TestScheduledAtRoundTrip() {
	when := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	job, err := s.jobSvc.CreateJob(s.ctx, &CreateJobRequest{
		CustomerID:  s.randomID(),
		Title:       "Deep clean apartment",
		Category:    "Cleaning",
		ScheduledAt: &when,
	})
	s.Require().NoError(err)

	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.ScheduledAt)
	s.WithinDuration(when, *stored.ScheduledAt, time.Second)
}
