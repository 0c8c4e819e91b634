package services

import (
	"context"
	"fmt"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// ConfirmOnlinePayment applies a gateway-verified payment signal to a
// job. Signature validation is the gateway client's responsibility;
// this consumes the boolean outcome only. An unverified signal is
// rejected without mutation.
func (s *Job) ConfirmOnlinePayment(ctx context.Context, jobID uint, gatewayOrderID, gatewayPaymentID string, signatureValid bool) (*models.Job, error) {
	if gatewayOrderID == "" || gatewayPaymentID == "" {
		return nil, fmt.Errorf("%w: gateway order and payment ids are required", ErrValidation)
	}
	if !signatureValid {
		return nil, fmt.Errorf("%w: payment signature rejected by gateway", ErrValidation)
	}

	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.PaymentMethod == models.PaymentMethodCash {
			return fmt.Errorf("%w: cash jobs are settled by two-party confirmation", ErrIllegalState)
		}
		if job.PaymentStatus == models.PaymentStatusPaid {
			return fmt.Errorf("%w: payment already verified", ErrIllegalState)
		}

		job.GatewayOrderID = gatewayOrderID
		job.GatewayPaymentID = gatewayPaymentID
		job.PaymentStatus = models.PaymentStatusPaid
		if job.Invoice != nil && job.Invoice.Number != "" {
			job.Invoice.PaymentStatus = models.InvoicePaymentPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationPaymentVerified, job)
	if job.ProfessionalID != nil {
		s.notifier.Notify(ctx, *job.ProfessionalID, models.ActorRoleProfessional, models.NotificationPaymentVerified, job)
	}
	return job, nil
}
