package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// openCashReconciliation is called when a cash-method job completes:
// the payment enters cash_pending and the two-party confirmation record
// is initialized with the settlement amount.
func openCashReconciliation(job *models.Job, amount float64) {
	job.PaymentStatus = models.PaymentStatusCashPending
	if job.CashPaymentDetails == nil {
		job.CashPaymentDetails = &models.CashPaymentDetails{
			Amount:           amount,
			VerificationCode: uuid.NewString(),
		}
	}
}

// MarkCashReceived records the professional's side of the cash
// handshake. A single confirmation never finalizes the payment; the
// status stays cash_pending until the customer confirms too.
func (s *Job) MarkCashReceived(ctx context.Context, jobID uint, professionalID uint, amount float64) (*models.Job, error) {
	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if err := requireCashPending(job); err != nil {
			return err
		}
		if err := requireAssignedProfessional(job, professionalID); err != nil {
			return err
		}

		now := time.Now().UTC()
		details := job.CashPaymentDetails
		details.ProfessionalMarkedReceived = true
		details.ReceivedAt = &now
		if amount > 0 {
			details.Amount = amount
		}
		advanceCashVerification(job)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationCashReceived, job.CashPaymentDetails)
	return job, nil
}

// ConfirmCashPayment records the customer's side of the cash handshake.
// The payment advances to cash_verified only once both flags are set
// and no dispute is open.
func (s *Job) ConfirmCashPayment(ctx context.Context, jobID uint, customerID uint) (*models.Job, error) {
	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if err := requireCashPending(job); err != nil {
			return err
		}
		if job.CustomerID != customerID {
			return fmt.Errorf("%w: only the job's customer can confirm the payment", ErrValidation)
		}

		now := time.Now().UTC()
		details := job.CashPaymentDetails
		details.CustomerConfirmed = true
		details.ConfirmedAt = &now
		advanceCashVerification(job)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if job.ProfessionalID != nil {
		s.notifier.Notify(ctx, *job.ProfessionalID, models.ActorRoleProfessional, models.NotificationCashConfirmed, job.CashPaymentDetails)
	}
	return job, nil
}

// RaiseCashDispute flags the cash settlement as contested. Either party
// may raise it before verification; once raised, verification is
// blocked until an admin resolves the dispute.
func (s *Job) RaiseCashDispute(ctx context.Context, jobID uint, actor models.ActorRef, reason string) (*models.Job, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: dispute reason is required", ErrValidation)
	}

	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.CashPaymentDetails == nil {
			return fmt.Errorf("%w: job has no cash payment to dispute", ErrIllegalState)
		}
		if job.PaymentStatus == models.PaymentStatusCashVerified {
			return fmt.Errorf("%w: payment is already verified", ErrIllegalState)
		}
		if actor.Role == models.ActorRoleAdmin {
			return fmt.Errorf("%w: only a party to the transaction can raise a dispute", ErrValidation)
		}
		if err := requireParty(job, actor); err != nil {
			return err
		}
		if job.CashPaymentDetails.Dispute.Open() {
			return fmt.Errorf("%w: a dispute is already open", ErrIllegalState)
		}

		job.CashPaymentDetails.Dispute = &models.CashDispute{
			Raised:   true,
			RaisedBy: actor,
			Reason:   reason,
			RaisedAt: time.Now().UTC(),
			Status:   models.CashDisputePending,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyDispute(ctx, job, actor)
	return job, nil
}

// ResolveCashDispute closes an open dispute; an admin action only.
// Once resolved, the settlement verifies if both confirmations are
// already in place.
func (s *Job) ResolveCashDispute(ctx context.Context, jobID uint, admin models.ActorRef, resolution string) (*models.Job, error) {
	if admin.Role != models.ActorRoleAdmin {
		return nil, fmt.Errorf("%w: only an admin can resolve a dispute", ErrValidation)
	}
	if resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required", ErrValidation)
	}

	return s.mutate(ctx, jobID, func(job *models.Job) error {
		details := job.CashPaymentDetails
		if details == nil || !details.Dispute.Open() {
			return fmt.Errorf("%w: job has no open dispute", ErrIllegalState)
		}

		now := time.Now().UTC()
		details.Dispute.Status = models.CashDisputeResolved
		details.Dispute.Resolution = resolution
		details.Dispute.ResolvedBy = &admin
		details.Dispute.ResolvedAt = &now
		advanceCashVerification(job)
		return nil
	})
}

// AddReceiptPhoto appends receipt evidence to the cash settlement.
// The list is append-only; entries are never replaced or removed.
func (s *Job) AddReceiptPhoto(ctx context.Context, jobID uint, actor models.ActorRef, url string) (*models.Job, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: photo url is required", ErrValidation)
	}

	return s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.CashPaymentDetails == nil {
			return fmt.Errorf("%w: job has no cash payment", ErrIllegalState)
		}
		if err := requireParty(job, actor); err != nil {
			return err
		}

		job.CashPaymentDetails.ReceiptPhotos = append(job.CashPaymentDetails.ReceiptPhotos, models.ReceiptPhoto{
			ID:         uuid.NewString(),
			URL:        url,
			UploadedBy: actor,
			UploadedAt: time.Now().UTC(),
		})
		return nil
	})
}

// advanceCashVerification applies the AND-gate: both confirmations set
// and no open dispute. Anything less leaves the status untouched.
func advanceCashVerification(job *models.Job) {
	if job.PaymentStatus == models.PaymentStatusCashPending && job.CashPaymentDetails.Verifiable() {
		job.PaymentStatus = models.PaymentStatusCashVerified
		if job.Invoice != nil && job.Invoice.Number != "" {
			job.Invoice.PaymentStatus = models.InvoicePaymentPaid
		}
	}
}

// requireCashPending ensures the job is in the cash reconciliation phase
func requireCashPending(job *models.Job) error {
	if job.PaymentMethod != models.PaymentMethodCash {
		return fmt.Errorf("%w: job is not a cash payment", ErrIllegalState)
	}
	if job.CashPaymentDetails == nil || job.PaymentStatus != models.PaymentStatusCashPending {
		return fmt.Errorf("%w: job has no pending cash payment", ErrIllegalState)
	}
	return nil
}

func (s *Job) notifyDispute(ctx context.Context, job *models.Job, raisedBy models.ActorRef) {
	if raisedBy.Role != models.ActorRoleCustomer {
		s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationCashDisputed, job.CashPaymentDetails.Dispute)
	}
	if job.ProfessionalID != nil && raisedBy.Role != models.ActorRoleProfessional {
		s.notifier.Notify(ctx, *job.ProfessionalID, models.ActorRoleProfessional, models.NotificationCashDisputed, job.CashPaymentDetails.Dispute)
	}
}
