package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
)

// ReviewHandler handles HTTP requests for review operations
type ReviewHandler struct {
	*APIHandler
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(api *APIHandler) *ReviewHandler {
	return &ReviewHandler{APIHandler: api}
}

// CreateReviewParams is the request body for rating a completed job
type CreateReviewParams struct {
	JobID      uint   `json:"job_id"`
	CustomerID uint   `json:"customer_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// CreateReview handles rating a completed job
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var params CreateReviewParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	review, err := h.review.CreateReview(c.Context(), params.JobID, params.CustomerID, params.Rating, params.Comment)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, review)
}

// ListReviews handles listing reviews for a professional
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	professionalID := uint(c.QueryInt("professional_id"))
	if professionalID == 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidProfessionalID)
	}

	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	reviews, err := h.review.ListByProfessional(c.Context(), professionalID, opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgReviewListFailed)
	}

	return respondWithData(c, types.ListResponse[models.Review]{
		Rows: reviews,
		Pagination: types.PaginationResponse{
			Total:  len(reviews),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}
