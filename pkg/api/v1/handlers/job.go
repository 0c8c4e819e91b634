package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
	"github.com/fixitnow/fixitnow/internal/services"
	"github.com/fixitnow/fixitnow/internal/types"
)

// JobHandler handles HTTP requests for job lifecycle operations
type JobHandler struct {
	*APIHandler
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(api *APIHandler) *JobHandler {
	return &JobHandler{APIHandler: api}
}

// jobID parses the :id route parameter
func jobID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}
	return uint(id), nil
}

// CreateJob handles posting a new job request
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var params CreateJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.CreateJob(c.Context(), &services.CreateJobRequest{
		CustomerID:        params.CustomerID,
		Title:             params.Title,
		Description:       params.Description,
		Category:          params.Category,
		Priority:          params.Priority,
		ScheduledAt:       params.ScheduledAt,
		EstimatedDuration: params.EstimatedDuration,
		Budget:            params.Budget,
		FixedRate:         params.FixedRate,
		PaymentMethod:     params.PaymentMethod,
		Address:           params.Address,
		City:              params.City,
		PostalCode:        params.PostalCode,
		LocationPoint:     params.LocationPoint,
	})
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// GetJob handles retrieving a job by ID
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	job, err := h.job.GetJob(c.Context(), id)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// ListJobs handles listing jobs with filters and pagination
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	filter := repos.JobFilter{
		CustomerID:     uint(c.QueryInt("customer_id")),
		ProfessionalID: uint(c.QueryInt("professional_id")),
		Category:       c.Query("category"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := models.ParseJobStatus(statusStr)
		if err != nil {
			return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobStatus)
		}
		filter.Status = status
	}

	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	jobs, err := h.job.ListJobs(c.Context(), filter, opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgJobListFailed)
	}

	return respondWithData(c, types.ListResponse[models.Job]{
		Rows: jobs,
		Pagination: types.PaginationResponse{
			Total:  len(jobs),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// UpdateJob handles a partial update of a job's descriptive fields
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params UpdateJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.UpdateJob(c.Context(), id, &services.UpdateJobRequest{
		Title:             params.Title,
		Description:       params.Description,
		Priority:          params.Priority,
		ScheduledAt:       params.ScheduledAt,
		EstimatedDuration: params.EstimatedDuration,
		Budget:            params.Budget,
		FixedRate:         params.FixedRate,
		Address:           params.Address,
		City:              params.City,
		PostalCode:        params.PostalCode,
		LocationPoint:     params.LocationPoint,
		ClearLocation:     params.ClearLocation,
	})
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// TransitionJob handles a raw status transition by an arbitrary actor
func (h *JobHandler) TransitionJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params TransitionParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	actor, err := params.Ref()
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.Transition(c.Context(), id, models.JobStatus(params.Status), actor, params.Notes)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// AcceptJob handles a professional taking a pending job
func (h *JobHandler) AcceptJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params AcceptJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.AcceptJob(c.Context(), id, params.ProfessionalID, params.Notes)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// StartJob handles the assigned professional starting work
func (h *JobHandler) StartJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params AcceptJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.StartJob(c.Context(), id, params.ProfessionalID, params.Notes)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// CompleteJob handles the assigned professional finishing work
func (h *JobHandler) CompleteJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params CompleteJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.CompleteJob(c.Context(), id, params.ProfessionalID, params.FinalPrice, params.Notes)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// CancelJob handles either party calling off a job
func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params ActorParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	actor, err := params.Ref()
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.CancelJob(c.Context(), id, actor, params.Notes)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// DeclineJob handles a professional passing on a pending job
func (h *JobHandler) DeclineJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params AcceptJobParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.DeclineJob(c.Context(), id, params.ProfessionalID)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// AddTip handles the customer setting a tip before invoicing
func (h *JobHandler) AddTip(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params TipParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.AddTip(c.Context(), id, params.CustomerID, params.Amount)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// GenerateInvoice handles issuing the invoice for a completed job
func (h *JobHandler) GenerateInvoice(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	invoice, err := h.job.GenerateInvoice(c.Context(), id)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, invoice)
}

// GetInvoice handles fetching the invoice attached to a job
func (h *JobHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	invoice, err := h.job.GetInvoice(c.Context(), id)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, invoice)
}
