package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/models"
	"github.com/taskboard-dev/taskboard/internal/server/store"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// TaskUpdate carries the updatable task fields. A nil pointer means the field
// was not provided.
type TaskUpdate struct {
	Title       *string
	Description *string
	Done        *bool
}

// TaskService manages tasks under their owner's partition.
type TaskService struct {
	store  store.Gateway
	logger logging.Logger
	now    func() time.Time
}

func NewTaskService(gw store.Gateway, logger logging.Logger) *TaskService {
	return &TaskService{
		store:  gw,
		logger: logger,
		now:    time.Now,
	}
}

// Create stores a new task for ownerID and returns it. Whether the owner
// exists is not checked.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {

	id := uuid.NewString()
	task := models.NewTask(ownerID, id, title, description, s.now().UnixMilli())

	if err := s.store.Put(ctx, task); err != nil {
		return nil, fmt.Errorf("error storing task: %w", err)
	}

	return task, nil
}

// Get loads one task by owner and task id.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.store.Get(ctx, store.TaskKey(ownerID, taskID), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns every task owned by ownerID. An owner with no tasks yields an
// empty list, not an error.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.store.QueryPrefix(ctx, store.UserKeyPrefix+ownerID, store.TaskKeyPrefix, &tasks)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the provided task fields that differ from the stored values.
// Returns common.ErrNothingToUpdate when nothing would change and
// common.ErrorNotFound when the task does not exist.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, upd TaskUpdate) error {

	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	changes, err := update.NewBuilder().
		String("title", upd.Title, task.Title).
		String("description", upd.Description, task.Description).
		Bool("done", upd.Done, task.Done).
		Build()
	if err != nil {
		return err
	}

	return s.store.Update(ctx, task.Key(), changes)
}

// Delete removes the task and returns it as it was.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := s.store.Delete(ctx, store.TaskKey(ownerID, taskID), &task); err != nil {
		return nil, err
	}
	return &task, nil
}
