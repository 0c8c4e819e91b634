package services

import (
	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestCashVerificationNeedsBothParties() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))
	s.Equal(models.PaymentStatusCashPending, job.PaymentStatus)

	// Professional's confirmation alone never finalizes the payment
	job, err := s.jobSvc.MarkCashReceived(s.ctx, job.ID, pro.ID, 0)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashPending, job.PaymentStatus)
	s.True(job.CashPaymentDetails.ProfessionalMarkedReceived)
	s.NotNil(job.CashPaymentDetails.ReceivedAt)

	// Customer's confirmation closes the gate
	job, err = s.jobSvc.ConfirmCashPayment(s.ctx, job.ID, customerID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashVerified, job.PaymentStatus)
	s.True(job.CashPaymentDetails.CustomerConfirmed)
	s.Equal(models.InvoicePaymentPaid, job.Invoice.PaymentStatus)
}

func (s *ServiceTestSuite) TestCashVerificationOrderIndependent() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	job, err := s.jobSvc.ConfirmCashPayment(s.ctx, job.ID, customerID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashPending, job.PaymentStatus)

	job, err = s.jobSvc.MarkCashReceived(s.ctx, job.ID, pro.ID, 0)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashVerified, job.PaymentStatus)
}

func (s *ServiceTestSuite) TestMarkCashReceivedOverridesAmount() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	job, err := s.jobSvc.MarkCashReceived(s.ctx, job.ID, pro.ID, 850)
	s.Require().NoError(err)
	s.Equal(850.0, job.CashPaymentDetails.Amount)
}

func (s *ServiceTestSuite) TestMarkCashReceivedGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	// Only the assigned professional can record receipt
	_, err := s.jobSvc.MarkCashReceived(s.ctx, job.ID, s.randomID(), 0)
	s.ErrorIs(err, ErrValidation)

	// A non-cash job has nothing to receive
	online, pro := s.completeJob(s.randomID(), "online", floatPtr(800))
	_, err = s.jobSvc.MarkCashReceived(s.ctx, online.ID, pro.ID, 0)
	s.ErrorIs(err, ErrIllegalState)

	// Neither does a job that is not completed yet
	pending := s.createJob(customerID, "cash", nil)
	_, err = s.jobSvc.MarkCashReceived(s.ctx, pending.ID, s.randomID(), 0)
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestConfirmCashPaymentGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.ConfirmCashPayment(s.ctx, job.ID, customerID+1)
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestOpenDisputeBlocksVerification() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.MarkCashReceived(s.ctx, job.ID, pro.ID, 0)
	s.Require().NoError(err)

	job, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.CustomerRef(customerID), "paid less than billed")
	s.Require().NoError(err)
	s.Require().NotNil(job.CashPaymentDetails.Dispute)
	s.True(job.CashPaymentDetails.Dispute.Open())

	// Both flags end up set, but the open dispute holds the gate shut
	job, err = s.jobSvc.ConfirmCashPayment(s.ctx, job.ID, customerID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashPending, job.PaymentStatus)

	// Resolution releases it without another confirmation round
	job, err = s.jobSvc.ResolveCashDispute(s.ctx, job.ID, models.AdminRef(0), "amount corrected with both parties")
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusCashVerified, job.PaymentStatus)
	s.Equal(models.CashDisputeResolved, job.CashPaymentDetails.Dispute.Status)
	s.NotNil(job.CashPaymentDetails.Dispute.ResolvedAt)
}

func (s *ServiceTestSuite) TestRaiseCashDisputeGuards() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.CustomerRef(customerID), "")
	s.ErrorIs(err, ErrValidation)

	// Admins arbitrate disputes, they do not raise them
	_, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.AdminRef(0), "suspicious")
	s.ErrorIs(err, ErrValidation)

	_, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.CustomerRef(customerID+1), "not my job")
	s.ErrorIs(err, ErrValidation)

	_, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.ProfessionalRef(pro.ID), "short changed")
	s.Require().NoError(err)

	// Only one open dispute at a time
	_, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.CustomerRef(customerID), "me too")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestDisputeAfterVerificationRejected() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.MarkCashReceived(s.ctx, job.ID, pro.ID, 0)
	s.Require().NoError(err)
	_, err = s.jobSvc.ConfirmCashPayment(s.ctx, job.ID, customerID)
	s.Require().NoError(err)

	_, err = s.jobSvc.RaiseCashDispute(s.ctx, job.ID, models.CustomerRef(customerID), "second thoughts")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestResolveCashDisputeGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.ResolveCashDispute(s.ctx, job.ID, models.CustomerRef(customerID), "resolved")
	s.ErrorIs(err, ErrValidation)

	_, err = s.jobSvc.ResolveCashDispute(s.ctx, job.ID, models.AdminRef(0), "")
	s.ErrorIs(err, ErrValidation)

	// Nothing to resolve without an open dispute
	_, err = s.jobSvc.ResolveCashDispute(s.ctx, job.ID, models.AdminRef(0), "resolved")
	s.ErrorIs(err, ErrIllegalState)
}

func (s *ServiceTestSuite) TestReceiptPhotosAppendOnly() {
	customerID := s.randomID()
	job, pro := s.completeJob(customerID, "cash", floatPtr(800))

	job, err := s.jobSvc.AddReceiptPhoto(s.ctx, job.ID, models.ProfessionalRef(pro.ID), "https://cdn.example.com/r1.jpg")
	s.Require().NoError(err)
	job, err = s.jobSvc.AddReceiptPhoto(s.ctx, job.ID, models.CustomerRef(customerID), "https://cdn.example.com/r2.jpg")
	s.Require().NoError(err)

	photos := job.CashPaymentDetails.ReceiptPhotos
	s.Require().Len(photos, 2)
	s.Equal("https://cdn.example.com/r1.jpg", photos[0].URL)
	s.Equal("https://cdn.example.com/r2.jpg", photos[1].URL)
	s.NotEqual(photos[0].ID, photos[1].ID)
	s.Equal(models.ProfessionalRef(pro.ID), photos[0].UploadedBy)
	s.Equal(models.CustomerRef(customerID), photos[1].UploadedBy)
}

func (s *ServiceTestSuite) TestAddReceiptPhotoGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	_, err := s.jobSvc.AddReceiptPhoto(s.ctx, job.ID, models.CustomerRef(customerID), "")
	s.ErrorIs(err, ErrValidation)

	_, err = s.jobSvc.AddReceiptPhoto(s.ctx, job.ID, models.CustomerRef(customerID+1), "https://cdn.example.com/r.jpg")
	s.ErrorIs(err, ErrValidation)

	online, _ := s.completeJob(s.randomID(), "online", floatPtr(800))
	_, err = s.jobSvc.AddReceiptPhoto(s.ctx, online.ID, models.CustomerRef(online.CustomerID), "https://cdn.example.com/r.jpg")
	s.ErrorIs(err, ErrIllegalState)
}
