package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/services"
)

// AuthHandler serves login and the password reset endpoints.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewAuthHandler(authService *services.AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetRequestRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetValidateRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type ResetConfirmRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	session, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"accessToken": session.AccessToken,
		"userId":      session.UserID,
	})
}

func (h *AuthHandler) ResetRequest(c *fiber.Ctx) error {
	var req ResetRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	if _, err := h.authService.ResetRequest(c.Context(), req.Email); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "verification code sent to email"})
}

func (h *AuthHandler) ResetValidate(c *fiber.Ctx) error {
	var req ResetValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	if err := h.authService.ResetValidate(c.Context(), req.Email, req.Code); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "code valid"})
}

func (h *AuthHandler) ResetConfirm(c *fiber.Ctx) error {
	var req ResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	if err := h.authService.ResetConfirm(c.Context(), req.Email, req.NewPassword); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "password updated successfully"})
}
