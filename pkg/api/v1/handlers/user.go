package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/types"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	*APIHandler
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(api *APIHandler) *UserHandler {
	return &UserHandler{APIHandler: api}
}

// CreateUser handles registering a new customer account
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := user.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := h.user.CreateUser(c.Context(), &user)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgCreateUserFailed)
	}
	return respondWithData(c, fiber.Map{"user_id": id})
}

// GetUserByID handles retrieving a user by their ID
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	user, err := h.user.GetUserByID(c.Context(), uint(id))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, user)
}

// GetUsers handles listing users with pagination
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	if username := c.Query("username"); username != "" {
		user, err := h.user.GetUserByUsername(c.Context(), username)
		if err != nil {
			return respondWithServiceError(c, err)
		}
		return respondWithData(c, user)
	}

	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	users, err := h.user.GetAllUsers(c.Context(), opts)
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgGetUsersFailed)
	}

	return respondWithData(c, types.ListResponse[models.User]{
		Rows: users,
		Pagination: types.PaginationResponse{
			Total:  len(users),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// UpdateUser handles persisting changes to a user profile
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	user, err := h.user.GetUserByID(c.Context(), uint(id))
	if err != nil {
		return respondWithServiceError(c, err)
	}
	if err := c.BodyParser(user); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	user.ID = uint(id)

	if err := h.user.UpdateUser(c.Context(), user); err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, user)
}

// DeleteUser handles soft-deleting a user account
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	if err := h.user.DeleteUser(c.Context(), uint(id)); err != nil {
		return respondWithServiceError(c, err)
	}
	return respondWithData(c, nil)
}
