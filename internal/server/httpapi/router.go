package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/logging"
)

// NewRouter mounts every route on a fresh fiber application. The reset flow
// and user registration stay open; everything that mutates an existing
// account or touches tasks requires a bearer token.
func NewRouter(authH *AuthHandler, userH *UserHandler, taskH *TaskHandler, secretKey []byte, logger logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler(logger),
	})

	app.Post("/auth/login", authH.Login)
	app.Post("/auth/reset/request", authH.ResetRequest)
	app.Post("/auth/reset/validate", authH.ResetValidate)
	app.Post("/auth/reset/confirm", authH.ResetConfirm)

	requireAuth := AuthMiddleware(secretKey)

	app.Post("/users", userH.Create)
	app.Get("/users", userH.Get)
	app.Put("/users", requireAuth, userH.Update)
	app.Delete("/users", requireAuth, userH.Delete)
	app.Post("/users/uploadUrl", requireAuth, userH.UploadURL)

	tasks := app.Group("/tasks", requireAuth)
	tasks.Post("/", taskH.Create)
	tasks.Get("/", taskH.List)
	tasks.Put("/", taskH.Update)
	tasks.Delete("/", taskH.Delete)

	return app
}
