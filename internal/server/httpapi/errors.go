// Package httpapi exposes the task-management API over HTTP/JSON.
package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/logging"
)

const internalErrorMessage = "internal server error"

func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrNothingToUpdate),
		errors.Is(err, common.ErrInvalidCode),
		errors.Is(err, common.ErrCodeExpired),
		errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// jsonErrorHandler keeps errors raised by fiber itself, unknown routes and
// wrong methods included, in the same {"error": "<message>"} shape the
// handlers use.
func jsonErrorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		logger.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": internalErrorMessage})
	}
}

// writeError renders err as {"error": "<message>"}. Unexpected failures are
// logged in full but reported to the client as a generic 500.
func writeError(c *fiber.Ctx, logger logging.Logger, err error) error {
	status := statusFromError(err)
	message := err.Error()

	if status == fiber.StatusInternalServerError {
		logger.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = internalErrorMessage
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// errInvalidBody reports a request payload that could not be parsed at all.
var errInvalidBody = fmt.Errorf("%w: invalid request body", common.ErrorValidation)

// validationError wraps validator failures in common.ErrorValidation, naming
// the offending fields, e.g. "validation error: required fields: name, email".
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errInvalidBody
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		fields = append(fields, strings.ToLower(name[:1])+name[1:])
	}

	return fmt.Errorf("%w: required fields: %s", common.ErrorValidation, strings.Join(fields, ", "))
}
