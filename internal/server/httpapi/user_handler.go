package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/services"
)

// UserHandler serves profile CRUD and image upload grants.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewUserHandler(userService *services.UserService, logger logging.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
}

type UploadURLRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	user, err := h.userService.Create(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"userId": user.ID(),
		"name":   user.Name,
		"email":  user.Email,
	})
}

// Get returns one profile when the id query parameter is present, otherwise
// the full list.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		users, err := h.userService.List(c.Context())
		if err != nil {
			return writeError(c, h.logger, err)
		}
		return c.JSON(fiber.Map{"users": users})
	}

	user, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	err := h.userService.Update(c.Context(), req.UserID, services.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "user updated"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "query parameter 'id' is required")
	}

	if _, err := h.userService.Delete(c.Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "user deleted"})
}

func (h *UserHandler) UploadURL(c *fiber.Ctx) error {
	var req UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	grant, err := h.userService.IssueUploadGrant(c.Context(), req.UserID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"uploadUrl": grant.UploadURL,
		"imageUrl":  grant.ImageURL,
	})
}
