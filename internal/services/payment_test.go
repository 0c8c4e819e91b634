package services

import (
	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestConfirmOnlinePayment() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "online", floatPtr(600))

	job, err := s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "order_123", "pay_456", true)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusPaid, job.PaymentStatus)
	s.Equal("order_123", job.GatewayOrderID)
	s.Equal("pay_456", job.GatewayPaymentID)
	s.Equal(models.InvoicePaymentPaid, job.Invoice.PaymentStatus)
}

func (s *ServiceTestSuite) TestConfirmOnlinePaymentRejectedSignature() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "online", floatPtr(600))

	_, err := s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "order_123", "pay_456", false)
	s.ErrorIs(err, ErrValidation)

	// A rejected signal leaves the job untouched
	stored, err := s.jobSvc.GetJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusUnpaid, stored.PaymentStatus)
	s.Empty(stored.GatewayOrderID)
}

func (s *ServiceTestSuite) TestConfirmOnlinePaymentGuards() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "online", floatPtr(600))

	_, err := s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "", "pay_456", true)
	s.ErrorIs(err, ErrValidation)
	_, err = s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "order_123", "", true)
	s.ErrorIs(err, ErrValidation)

	// Cash jobs settle through the two-party handshake, never the gateway
	cash, _ := s.completeJob(s.randomID(), "cash", floatPtr(600))
	_, err = s.jobSvc.ConfirmOnlinePayment(s.ctx, cash.ID, "order_123", "pay_456", true)
	s.ErrorIs(err, ErrIllegalState)

	// Double confirmation is rejected
	_, err = s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "order_123", "pay_456", true)
	s.Require().NoError(err)
	_, err = s.jobSvc.ConfirmOnlinePayment(s.ctx, job.ID, "order_123", "pay_789", true)
	s.ErrorIs(err, ErrIllegalState)
}
