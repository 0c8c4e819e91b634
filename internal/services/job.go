package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
)

// DefaultCommissionRate is the platform's cut of the settlement amount
// unless configuration overrides it.
const DefaultCommissionRate = 0.10

// defaultUpdateRetries bounds how often a versioned save is retried
// after losing a race before the conflict is surfaced to the caller.
const defaultUpdateRetries = 3

// JobConfig carries tunable business parameters for the job service
type JobConfig struct {
	// CommissionRate is the fraction of the settlement amount retained
	// by the platform. Tip is always excluded.
	CommissionRate float64
	// UpdateRetries is the number of times a lost optimistic-lock race
	// is retried before ErrConflict is returned.
	UpdateRetries int
}

// withDefaults fills zero-valued config fields
func (c JobConfig) withDefaults() JobConfig {
	if c.CommissionRate == 0 {
		c.CommissionRate = DefaultCommissionRate
	}
	if c.UpdateRetries == 0 {
		c.UpdateRetries = defaultUpdateRetries
	}
	return c
}

// Job provides business logic for the job lifecycle: status
// transitions, invoice generation, commission computation and cash
// payment reconciliation.
type Job struct {
	jobRepo  *repos.JobRepository
	proRepo  *repos.ProfessionalRepository
	notifier *Notifier
	cfg      JobConfig
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo *repos.JobRepository, proRepo *repos.ProfessionalRepository, notifier *Notifier, cfg JobConfig) *Job {
	return &Job{jobRepo: jobRepo, proRepo: proRepo, notifier: notifier, cfg: cfg.withDefaults()}
}

// CreateJobRequest carries the customer-supplied fields for a new job
type CreateJobRequest struct {
	CustomerID        uint
	Title             string
	Description       string
	Category          string
	Priority          string
	ScheduledAt       *time.Time
	EstimatedDuration int
	Budget            models.Budget
	FixedRate         *float64
	PaymentMethod     string
	Address           string
	City              string
	PostalCode        string
	LocationPoint     *models.GeoPoint
}

// CreateJob creates a new job. Whatever status or history the caller
// supplied is discarded: the job starts pending with a seeded audit
// trail, and a malformed location point is stripped before the insert.
func (s *Job) CreateJob(ctx context.Context, req *CreateJobRequest) (*models.Job, error) {
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !models.ValidServiceCategory(req.Category) {
		return nil, fmt.Errorf("%w: invalid service category %q", ErrValidation, req.Category)
	}

	priority := models.JobPriorityMedium
	if req.Priority != "" {
		p, err := models.ParseJobPriority(req.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		priority = p
	}

	method := models.PaymentMethodCash
	if req.PaymentMethod != "" {
		switch models.PaymentMethod(req.PaymentMethod) {
		case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodOnline:
			method = models.PaymentMethod(req.PaymentMethod)
		default:
			return nil, fmt.Errorf("%w: invalid payment method %q", ErrValidation, req.PaymentMethod)
		}
	}

	job := &models.Job{
		CustomerID:        req.CustomerID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Priority:          priority,
		ScheduledAt:       req.ScheduledAt,
		EstimatedDuration: req.EstimatedDuration,
		Budget:            req.Budget,
		FixedRate:         req.FixedRate,
		PaymentMethod:     method,
		PaymentStatus:     models.PaymentStatusUnpaid,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		LocationPoint:     req.LocationPoint,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job by its ID
func (s *Job) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "job %d", id)
	}
	return job, nil
}

// ListJobs retrieves a paginated list of jobs
func (s *Job) ListJobs(ctx context.Context, filter repos.JobFilter, opts *models.ListOptions) ([]models.Job, error) {
	return s.jobRepo.List(ctx, filter, opts)
}

// CountJobs returns the number of jobs matching the filter
func (s *Job) CountJobs(ctx context.Context, filter repos.JobFilter) (int64, error) {
	return s.jobRepo.Count(ctx, filter)
}

// mutate runs a read-modify-write cycle against a job under optimistic
// versioning. When the conditional save loses a race the cycle is
// re-read and re-applied, so neither party's flags nor history entries
// can be silently dropped by a concurrent writer.
func (s *Job) mutate(ctx context.Context, jobID uint, fn func(job *models.Job) error) (*models.Job, error) {
	for attempt := 0; ; attempt++ {
		job, err := s.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if err := fn(job); err != nil {
			return nil, err
		}

		err = s.jobRepo.Update(ctx, job)
		if err == nil {
			return job, nil
		}
		if errors.Is(err, repos.ErrVersionConflict) {
			if attempt+1 < s.cfg.UpdateRetries {
				continue
			}
			return nil, fmt.Errorf("%w: job %d", ErrConflict, jobID)
		}
		return nil, err
	}
}

// Transition moves a job to newStatus, appends the audit-trail entry
// and persists both in one atomic save. Completing a job also computes
// the commission, generates the invoice and opens cash reconciliation
// for cash-method jobs, all before the save.
func (s *Job) Transition(ctx context.Context, jobID uint, newStatus models.JobStatus, actor models.ActorRef, notes string) (*models.Job, error) {
	parsed, err := models.ParseJobStatus(newStatus.String())
	if err != nil || parsed == models.JobStatusUnknown {
		return nil, fmt.Errorf("%w: invalid job status %q", ErrValidation, newStatus)
	}

	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		return s.applyTransition(job, parsed, actor, notes)
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, job, parsed, actor)
	return job, nil
}

// applyTransition mutates the in-memory job; persistence is the caller's job
func (s *Job) applyTransition(job *models.Job, newStatus models.JobStatus, actor models.ActorRef, notes string) error {
	if !job.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: cannot move job from %s to %s", ErrIllegalState, job.Status, newStatus)
	}

	job.Status = newStatus
	job.AppendHistory(newStatus, actor, notes, time.Now().UTC())

	if newStatus == models.JobStatusCompleted {
		base := job.SettlementBase()
		job.Commission = computeCommission(base, s.cfg.CommissionRate)
		if _, err := attachInvoice(job, time.Now().UTC()); err != nil {
			return err
		}
		if job.PaymentMethod == models.PaymentMethodCash {
			openCashReconciliation(job, base)
		}
	}
	return nil
}

// AcceptJob assigns a professional to a pending job
func (s *Job) AcceptJob(ctx context.Context, jobID, professionalID uint, notes string) (*models.Job, error) {
	if _, err := s.proRepo.GetByID(ctx, professionalID); err != nil {
		return nil, mapNotFound(err, "professional %d", professionalID)
	}

	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.DeclinedBy.Contains(professionalID) {
			return fmt.Errorf("%w: professional %d already declined this job", ErrIllegalState, professionalID)
		}
		if err := s.applyTransition(job, models.JobStatusAccepted, models.ProfessionalRef(professionalID), notes); err != nil {
			return err
		}
		job.ProfessionalID = &professionalID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobAccepted, job)
	return job, nil
}

// StartJob marks an accepted job as in progress; only the assigned
// professional may start it.
func (s *Job) StartJob(ctx context.Context, jobID, professionalID uint, notes string) (*models.Job, error) {
	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if err := requireAssignedProfessional(job, professionalID); err != nil {
			return err
		}
		return s.applyTransition(job, models.JobStatusInProgress, models.ProfessionalRef(professionalID), notes)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobStarted, job)
	return job, nil
}

// CompleteJob finishes an in-progress job. The final price, when
// supplied, becomes the settlement amount the commission and invoice
// are computed from.
func (s *Job) CompleteJob(ctx context.Context, jobID, professionalID uint, finalPrice *float64, notes string) (*models.Job, error) {
	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if err := requireAssignedProfessional(job, professionalID); err != nil {
			return err
		}
		if finalPrice != nil {
			if *finalPrice < 0 {
				return fmt.Errorf("%w: final price cannot be negative", ErrValidation)
			}
			job.FinalPrice = finalPrice
		}
		return s.applyTransition(job, models.JobStatusCompleted, models.ProfessionalRef(professionalID), notes)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobCompleted, job)
	return job, nil
}

// CancelJob calls off a non-terminal job. Either party to the job (or
// an admin) may cancel; a completed job can never be cancelled.
func (s *Job) CancelJob(ctx context.Context, jobID uint, actor models.ActorRef, notes string) (*models.Job, error) {
	job, err := s.mutate(ctx, jobID, func(job *models.Job) error {
		if err := requireParty(job, actor); err != nil {
			return err
		}
		return s.applyTransition(job, models.JobStatusCancelled, actor, notes)
	})
	if err != nil {
		return nil, err
	}

	s.notifyCancellation(ctx, job, actor)
	return job, nil
}

// DeclineJob records that a professional passed on a pending job, so
// matching never offers it to them again.
func (s *Job) DeclineJob(ctx context.Context, jobID, professionalID uint) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.Status != models.JobStatusPending {
			return fmt.Errorf("%w: only pending jobs can be declined", ErrIllegalState)
		}
		if !job.DeclinedBy.Contains(professionalID) {
			job.DeclinedBy = append(job.DeclinedBy, professionalID)
		}
		return nil
	})
}

// AddTip sets the customer's tip. Tips are closed once the invoice
// exists because the tip line is part of the billed document.
func (s *Job) AddTip(ctx context.Context, jobID uint, customerID uint, amount float64) (*models.Job, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: tip amount cannot be negative", ErrValidation)
	}
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.CustomerID != customerID {
			return fmt.Errorf("%w: only the job's customer can tip", ErrValidation)
		}
		if job.Invoice != nil && job.Invoice.Number != "" {
			return fmt.Errorf("%w: invoice already issued, tip is closed", ErrIllegalState)
		}
		job.TipAmount = amount
		return nil
	})
}

// UpdateJobRequest carries the mutable descriptive fields of a job.
// Nil pointers leave the stored value untouched; a supplied malformed
// location point clears the stored point.
type UpdateJobRequest struct {
	Title             *string
	Description       *string
	Priority          *string
	ScheduledAt       *time.Time
	EstimatedDuration *int
	Budget            *models.Budget
	FixedRate         *float64
	Address           *string
	City              *string
	PostalCode        *string
	LocationPoint     *models.GeoPoint
	ClearLocation     bool
}

// UpdateJob applies a partial update to a non-terminal job
func (s *Job) UpdateJob(ctx context.Context, jobID uint, req *UpdateJobRequest) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		if job.Status.IsTerminal() {
			return fmt.Errorf("%w: cannot update a %s job", ErrIllegalState, job.Status)
		}
		if req.Title != nil {
			if *req.Title == "" {
				return fmt.Errorf("%w: title cannot be empty", ErrValidation)
			}
			job.Title = *req.Title
		}
		if req.Description != nil {
			job.Description = *req.Description
		}
		if req.Priority != nil {
			p, err := models.ParseJobPriority(*req.Priority)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			job.Priority = p
		}
		if req.ScheduledAt != nil {
			job.ScheduledAt = req.ScheduledAt
		}
		if req.EstimatedDuration != nil {
			job.EstimatedDuration = *req.EstimatedDuration
		}
		if req.Budget != nil {
			job.Budget = *req.Budget
		}
		if req.FixedRate != nil {
			job.FixedRate = req.FixedRate
		}
		if req.Address != nil {
			job.Address = *req.Address
		}
		if req.City != nil {
			job.City = *req.City
		}
		if req.PostalCode != nil {
			job.PostalCode = *req.PostalCode
		}
		if req.LocationPoint != nil || req.ClearLocation {
			// The model hook strips a malformed point, which the
			// versioned save then writes out as an explicit unset.
			job.LocationPoint = req.LocationPoint
		}
		return nil
	})
}

// requireAssignedProfessional ensures the acting professional is the one
// assigned to the job.
func requireAssignedProfessional(job *models.Job, professionalID uint) error {
	if job.ProfessionalID == nil || *job.ProfessionalID != professionalID {
		return fmt.Errorf("%w: professional %d is not assigned to job %d", ErrValidation, professionalID, job.ID)
	}
	return nil
}

// requireParty ensures the actor is the job's customer, its assigned
// professional, or an admin.
func requireParty(job *models.Job, actor models.ActorRef) error {
	switch actor.Role {
	case models.ActorRoleAdmin:
		return nil
	case models.ActorRoleCustomer:
		if job.CustomerID == actor.ID {
			return nil
		}
	case models.ActorRoleProfessional:
		if job.ProfessionalID != nil && *job.ProfessionalID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: actor is not a party to job %d", ErrValidation, job.ID)
}

func (s *Job) notifyTransition(ctx context.Context, job *models.Job, status models.JobStatus, actor models.ActorRef) {
	switch status {
	case models.JobStatusAccepted:
		s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobAccepted, job)
	case models.JobStatusInProgress:
		s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobStarted, job)
	case models.JobStatusCompleted:
		s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobCompleted, job)
	case models.JobStatusCancelled:
		s.notifyCancellation(ctx, job, actor)
	}
}

func (s *Job) notifyCancellation(ctx context.Context, job *models.Job, actor models.ActorRef) {
	if actor.Role != models.ActorRoleCustomer {
		s.notifier.Notify(ctx, job.CustomerID, models.ActorRoleCustomer, models.NotificationJobCancelled, job)
	}
	if job.ProfessionalID != nil && actor.Role != models.ActorRoleProfessional {
		s.notifier.Notify(ctx, *job.ProfessionalID, models.ActorRoleProfessional, models.NotificationJobCancelled, job)
	}
}
