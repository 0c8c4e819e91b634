package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
)

// ProfessionalHandler handles HTTP requests for professional operations
type ProfessionalHandler struct {
	*APIHandler
}

// NewProfessionalHandler creates a new ProfessionalHandler instance
func NewProfessionalHandler(api *APIHandler) *ProfessionalHandler {
	return &ProfessionalHandler{APIHandler: api}
}

// CreateProfessional handles registering a new provider account
func (h *ProfessionalHandler) CreateProfessional(c *fiber.Ctx) error {
	var pro models.Professional
	if err := c.BodyParser(&pro); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := pro.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := h.professional.Create(c.Context(), &pro)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgCreateProFailed)
	}
	return respondWithData(c, fiber.Map{"professional_id": id})
}

// GetProfessional handles retrieving a professional by their ID
func (h *ProfessionalHandler) GetProfessional(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidProfessionalID)
	}

	pro, err := h.professional.GetByID(c.Context(), uint(id))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, pro)
}

// ListProfessionals handles listing professionals, optionally by category
func (h *ProfessionalHandler) ListProfessionals(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	pros, err := h.professional.List(c.Context(), c.Query("category"), opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgListProsFailed)
	}

	return respondWithData(c, types.ListResponse[models.Professional]{
		Rows: pros,
		Pagination: types.PaginationResponse{
			Total:  len(pros),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// UpdateProfessional handles persisting changes to a provider profile
func (h *ProfessionalHandler) UpdateProfessional(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidProfessionalID)
	}

	pro, err := h.professional.GetByID(c.Context(), uint(id))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	if err := c.BodyParser(pro); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	pro.ID = uint(id)

	if err := h.professional.Update(c.Context(), pro); err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, pro)
}
