package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/models"
	"github.com/taskboard-dev/taskboard/internal/server/services"
)

// TaskHandler serves task CRUD. All routes sit behind the auth middleware;
// the acting user still names the owner partition explicitly, matching the
// stored key layout.
type TaskHandler struct {
	taskService *services.TaskService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewTaskHandler(taskService *services.TaskService, logger logging.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validator.New(),
		logger:      logger,
	}
}

type CreateTaskRequest struct {
	UserID      string `json:"userId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateTaskRequest struct {
	UserID      string  `json:"userId" validate:"required"`
	TaskID      string  `json:"taskId" validate:"required"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Done        *bool   `json:"done,omitempty"`
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	task, err := h.taskService.Create(c.Context(), req.UserID, req.Title, req.Description)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"taskId":      task.TaskID,
		"title":       task.Title,
		"description": task.Description,
		"done":        task.Done,
	})
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return badRequest(c, "query parameter 'userId' is required")
	}

	tasks, err := h.taskService.List(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return c.JSON(fiber.Map{"tasks": tasks})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.logger, errInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, h.logger, validationError(err))
	}

	err := h.taskService.Update(c.Context(), req.UserID, req.TaskID, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "task updated"})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID := c.Query("userId")
	taskID := c.Query("taskId")
	if userID == "" || taskID == "" {
		return badRequest(c, "query parameters 'userId' and 'taskId' are required")
	}

	if _, err := h.taskService.Delete(c.Context(), userID, taskID); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "task deleted"})
}
