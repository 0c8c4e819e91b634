package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// PaymentHandler handles HTTP requests for cash reconciliation and
// online payment verification.
type PaymentHandler struct {
	*APIHandler
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(api *APIHandler) *PaymentHandler {
	return &PaymentHandler{APIHandler: api}
}

// MarkCashReceived handles the professional's cash confirmation
func (h *PaymentHandler) MarkCashReceived(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params CashReceivedParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.MarkCashReceived(c.Context(), id, params.ProfessionalID, params.Amount)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// ConfirmCashPayment handles the customer's cash confirmation
func (h *PaymentHandler) ConfirmCashPayment(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params CashConfirmParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.ConfirmCashPayment(c.Context(), id, params.CustomerID)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// RaiseCashDispute handles either party contesting a cash settlement
func (h *PaymentHandler) RaiseCashDispute(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params CashDisputeParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	actor, err := params.Ref()
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.RaiseCashDispute(c.Context(), id, actor, params.Reason)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// ResolveCashDispute handles an admin closing a dispute
func (h *PaymentHandler) ResolveCashDispute(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params CashResolveParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.ResolveCashDispute(c.Context(), id, models.AdminRef(params.AdminID), params.Resolution)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// AddReceiptPhoto handles appending receipt evidence to a cash settlement
func (h *PaymentHandler) AddReceiptPhoto(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params ReceiptPhotoParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	actor, err := params.Ref()
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.job.AddReceiptPhoto(c.Context(), id, actor, params.URL)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}

// VerifyOnlinePayment handles the gateway-verified payment signal
func (h *PaymentHandler) VerifyOnlinePayment(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidJobID)
	}

	var params VerifyPaymentParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	job, err := h.job.ConfirmOnlinePayment(c.Context(), id, params.GatewayOrderID, params.GatewayPaymentID, params.SignatureValid)
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, job)
}
