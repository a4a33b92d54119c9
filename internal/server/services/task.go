package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements the owner-scoped task operations. Every method
// requires an authenticated caller in ctx and only ever touches the caller's
// own tasks.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
	log         logging.Logger
}

func NewTaskService(m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{
		repomanager: m,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         log.With("module", "tasks"),
	}
}

// List returns the caller's tasks, oldest first.
func (s *TaskService) List(ctx context.Context) ([]*models.Task, error) {
	user, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repomanager.Tasks().ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Create adds a task for the caller. A blank title fails with
// common.ErrorValidation.
func (s *TaskService) Create(ctx context.Context, title string) (*models.Task, error) {
	user, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	task, err := s.repomanager.Tasks().Create(ctx, &models.Task{
		ID:        s.newID(),
		Title:     title,
		Completed: false,
		OwnerID:   user.ID,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	s.log.Debug(ctx, "task created", "user_id", user.ID, "task_id", task.ID)

	return task, nil
}

// Update changes the supplied fields of one of the caller's tasks. A task
// that does not exist or belongs to someone else is common.ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	user, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	task, err := s.repomanager.Tasks().UpdateFields(ctx, id, user.ID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

// Delete removes one of the caller's tasks. Deleting a missing or foreign
// task is common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	user, err := identity.Require(ctx)
	if err != nil {
		return false, err
	}

	deleted, err := s.repomanager.Tasks().DeleteByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		return false, fmt.Errorf("error deleting task: %w", err)
	}
	if !deleted {
		return false, common.ErrorNotFound
	}

	s.log.Debug(ctx, "task deleted", "user_id", user.ID, "task_id", id)

	return true, nil
}
