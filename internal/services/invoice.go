package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// GenerateInvoice issues the invoice for a completed job and persists
// it. Generation is idempotent: a job that already carries an invoice
// number gets the existing invoice back unchanged.
func (s *Job) GenerateInvoice(ctx context.Context, jobID uint) (*models.Invoice, error) {
	var invoice *models.Invoice
	_, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		inv, err := attachInvoice(job, time.Now().UTC())
		if err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice returns the invoice attached to a job
func (s *Job) GetInvoice(ctx context.Context, jobID uint) (*models.Invoice, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Invoice == nil || job.Invoice.Number == "" {
		return nil, fmt.Errorf("%w: job %d has no invoice", ErrNotFound, jobID)
	}
	return job.Invoice, nil
}

// attachInvoice builds the invoice on the in-memory job. The settlement
// base amount resolves final price, then fixed rate, then the budget
// ceiling, then zero. Tip, when present, is billed as its own line.
func attachInvoice(job *models.Job, now time.Time) (*models.Invoice, error) {
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("%w: cannot invoice an incomplete job", ErrIllegalState)
	}
	if job.Invoice != nil && job.Invoice.Number != "" {
		return job.Invoice, nil
	}

	base := job.SettlementBase()
	title := job.Title
	if title == "" {
		title = "Professional Service"
	}

	items := []models.InvoiceItem{{
		Description: fmt.Sprintf("%s Service - %s", job.Category, title),
		Quantity:    1,
		UnitPrice:   base,
		Total:       base,
	}}
	if job.TipAmount > 0 {
		items = append(items, models.InvoiceItem{
			Description: "Tip Amount",
			Quantity:    1,
			UnitPrice:   job.TipAmount,
			Total:       job.TipAmount,
		})
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := round2(subtotal * models.InvoiceTaxRate)

	job.Invoice = &models.Invoice{
		Number:        newInvoiceNumber(now),
		Items:         items,
		Subtotal:      round2(subtotal),
		Tax:           tax,
		Total:         round2(subtotal + tax),
		PaymentStatus: models.InvoicePaymentPending,
		IssuedAt:      now,
	}
	return job.Invoice, nil
}

// computeCommission splits the settlement amount between the platform
// and the professional. Tip is excluded; it passes through in full.
func computeCommission(base, rate float64) *models.Commission {
	fee := round2(base * rate)
	return &models.Commission{
		Total:            fee,
		CompanyFee:       fee,
		ProviderEarnings: round2(base - fee),
		CommissionRate:   rate,
	}
}

// newInvoiceNumber builds a best-effort unique invoice number from a
// millisecond timestamp and a random three-digit suffix.
func newInvoiceNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("INV-%d-%03d", now.UnixMilli(), suffix)
}

// round2 rounds a monetary amount to two decimal places
func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
