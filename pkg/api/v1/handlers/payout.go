package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
)

// PayoutHandler handles HTTP requests for payout operations
type PayoutHandler struct {
	*APIHandler
}

// NewPayoutHandler creates a new PayoutHandler instance
func NewPayoutHandler(api *APIHandler) *PayoutHandler {
	return &PayoutHandler{APIHandler: api}
}

// CreatePayoutParams is the request body for queueing a payout
type CreatePayoutParams struct {
	ProfessionalID uint    `json:"professional_id"`
	Amount         float64 `json:"amount"`
	ProcessingFee  float64 `json:"processing_fee"`
}

// UpdatePayoutStatusParams is the request body for moving a payout
type UpdatePayoutStatusParams struct {
	Status string `json:"status"`
}

// CreatePayout handles queueing a transfer of provider earnings
func (h *PayoutHandler) CreatePayout(c *fiber.Ctx) error {
	var params CreatePayoutParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	payout, err := h.payout.CreatePayout(c.Context(), params.ProfessionalID, params.Amount, params.ProcessingFee)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, payout)
}

// GetPayout handles retrieving a payout by ID
func (h *PayoutHandler) GetPayout(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidPayoutID)
	}

	payout, err := h.payout.GetPayout(c.Context(), uint(id))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, payout)
}

// UpdatePayoutStatus handles moving a payout through its processing states
func (h *PayoutHandler) UpdatePayoutStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidPayoutID)
	}

	var params UpdatePayoutStatusParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	payout, err := h.payout.UpdatePayoutStatus(c.Context(), uint(id), models.PayoutStatus(params.Status))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, payout)
}

// ListPayouts handles listing payouts for a professional
func (h *PayoutHandler) ListPayouts(c *fiber.Ctx) error {
	professionalID := uint(c.QueryInt("professional_id"))
	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	payouts, err := h.payout.ListPayouts(c.Context(), professionalID, opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgPayoutListFailed)
	}

	return respondWithData(c, types.ListResponse[models.Payout]{
		Rows: payouts,
		Pagination: types.PaginationResponse{
			Total:  len(payouts),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}
