package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
)

// NotificationHandler handles HTTP requests for notification operations
type NotificationHandler struct {
	*APIHandler
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(api *APIHandler) *NotificationHandler {
	return &NotificationHandler{APIHandler: api}
}

// ListNotifications handles listing an account's notifications
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	recipientID := uint(c.QueryInt("recipient_id"))
	role, err := models.ParseActorRole(c.Query("recipient_role"))
	if err != nil || recipientID == 0 {
		return respondWithError(c, fiber.StatusBadRequest, "recipient_id and recipient_role are required")
	}

	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	notifications, err := h.notifier.ListForRecipient(c.Context(), recipientID, role, opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgNotificationList)
	}

	return respondWithData(c, types.ListResponse[models.Notification]{
		Rows: notifications,
		Pagination: types.PaginationResponse{
			Total:  len(notifications),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// MarkNotificationRead handles flagging a notification as read
func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidNotification)
	}

	if err := h.notifier.MarkRead(c.Context(), uint(id)); err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, nil)
}
