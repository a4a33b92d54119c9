// Package tasks contains the task store. Every operation is scoped by the
// owner's id; there is deliberately no lookup by task id alone.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Repository persists tasks. Owner-scoped misses return common.ErrorNotFound.
type Repository interface {
	// ListByOwner returns the owner's tasks ordered by CreatedAt, then ID.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error)
	// UpdateFields applies the non-nil fields of patch and returns the task
	// as stored afterwards.
	UpdateFields(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error)
	// DeleteByIDAndOwner reports whether a task was removed.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error)
}
