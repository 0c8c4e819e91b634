package services

import (
	"strings"
	"time"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

func (s *ServiceTestSuite) TestInvoiceIssuedAtCompletion() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))

	inv := job.Invoice
	s.Require().NotNil(inv)
	s.True(strings.HasPrefix(inv.Number, "INV-"))
	s.Require().Len(inv.Items, 1)
	s.Equal("Plumbing Service - Fix leaking kitchen tap", inv.Items[0].Description)
	s.Equal(1, inv.Items[0].Quantity)
	s.Equal(800.0, inv.Items[0].UnitPrice)
	s.Equal(800.0, inv.Subtotal)
	s.Equal(144.0, inv.Tax)
	s.Equal(944.0, inv.Total)
	s.Equal(models.InvoicePaymentPending, inv.PaymentStatus)
}

func (s *ServiceTestSuite) TestInvoiceIncludesTipLine() {
	customerID := s.randomID()
	job, pro := s.startJob(customerID, "cash", floatPtr(550))

	_, err := s.jobSvc.AddTip(s.ctx, job.ID, customerID, 99)
	s.Require().NoError(err)

	job, err = s.jobSvc.CompleteJob(s.ctx, job.ID, pro.ID, nil, "")
	s.Require().NoError(err)

	inv := job.Invoice
	s.Require().NotNil(inv)
	s.Require().Len(inv.Items, 2)
	s.Equal("Tip Amount", inv.Items[1].Description)
	s.Equal(99.0, inv.Items[1].Total)
	s.Equal(649.0, inv.Subtotal)
	s.Equal(116.82, inv.Tax)
	s.Equal(765.82, inv.Total)

	// The tip is billed but never commissioned
	s.Require().NotNil(job.Commission)
	s.Equal(55.0, job.Commission.CompanyFee)
	s.Equal(495.0, job.Commission.ProviderEarnings)
}

func (s *ServiceTestSuite) TestGenerateInvoiceIdempotent() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", floatPtr(800))
	original := job.Invoice

	first, err := s.jobSvc.GenerateInvoice(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(original.Number, first.Number)

	// Repeated generation returns the billed document unchanged, not a
	// reissued one: same lines, same totals, same issue time.
	second, err := s.jobSvc.GenerateInvoice(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(first.Number, second.Number)
	s.Equal(first.Items, second.Items)
	s.Equal(first.Subtotal, second.Subtotal)
	s.Equal(first.Tax, second.Tax)
	s.Equal(first.Total, second.Total)
	s.Equal(first.PaymentStatus, second.PaymentStatus)
	s.True(first.IssuedAt.Equal(second.IssuedAt))
	s.True(original.IssuedAt.Equal(second.IssuedAt))
}

func (s *ServiceTestSuite) TestGenerateInvoiceRequiresCompletion() {
	job := s.createJob(s.randomID(), "cash", nil)

	_, err := s.jobSvc.GenerateInvoice(s.ctx, job.ID)
	s.ErrorIs(err, ErrIllegalState)

	_, err = s.jobSvc.GetInvoice(s.ctx, job.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestInvoiceFallsBackToBudgetCeiling() {
	customerID := s.randomID()
	job, _ := s.completeJob(customerID, "cash", nil)

	// No final price and no fixed rate leaves the budget ceiling
	s.Equal(500.0, job.Invoice.Subtotal)
	s.Equal(90.0, job.Invoice.Tax)
	s.Equal(590.0, job.Invoice.Total)
	s.Equal(50.0, job.Commission.CompanyFee)
}

func (s *ServiceTestSuite) TestConfiguredCommissionRate() {
	svc := NewJobService(s.jobRepo, s.proRepo, s.notifier, JobConfig{CommissionRate: 0.15})

	customerID := s.randomID()
	pro := s.createProfessional()
	job := s.createJob(customerID, "cash", nil)
	_, err := svc.AcceptJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)
	_, err = svc.StartJob(s.ctx, job.ID, pro.ID, "")
	s.Require().NoError(err)
	job, err = svc.CompleteJob(s.ctx, job.ID, pro.ID, floatPtr(1000), "")
	s.Require().NoError(err)

	s.Require().NotNil(job.Commission)
	s.Equal(0.15, job.Commission.CommissionRate)
	s.Equal(150.0, job.Commission.CompanyFee)
	s.Equal(850.0, job.Commission.ProviderEarnings)
}

func (s *ServiceTestSuite) TestInvoiceNumberFormat() {
	now := time.Now().UTC()
	number := newInvoiceNumber(now)

	parts := strings.Split(number, "-")
	s.Require().Len(parts, 3)
	s.Equal("INV", parts[0])
	s.Len(parts[2], 3, "suffix is always three digits")
}

func (s *ServiceTestSuite) TestRound2() {
	s.Equal(116.82, round2(116.82000000001))
	s.Equal(0.1, round2(0.10000000000000003))
	s.Equal(100.0, round2(99.999))
}
