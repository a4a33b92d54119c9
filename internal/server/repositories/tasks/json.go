package tasks

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/jsondb"
)

type JSONRepository struct {
	db *jsondb.DB
}

func NewJSONRepository(db *jsondb.DB) *JSONRepository {
	return &JSONRepository{db: db}
}

func (r *JSONRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	result := []*models.Task{}

	_ = r.db.View(func(doc *jsondb.Document) error {
		for _, t := range doc.Tasks {
			if t.OwnerID == ownerID {
				cp := *t
				result = append(result, &cp)
			}
		}
		return nil
	})

	slices.SortFunc(result, func(a, b *models.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return result, nil
}

func (r *JSONRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	stored := *task

	err := r.db.Update(ctx, func(doc *jsondb.Document) error {
		if _, ok := doc.Tasks[stored.ID]; ok {
			return common.ErrorAlreadyExists
		}
		cp := stored
		doc.Tasks[stored.ID] = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *JSONRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	var found *models.Task

	_ = r.db.View(func(doc *jsondb.Document) error {
		if t, ok := doc.Tasks[id]; ok && t.OwnerID == ownerID {
			cp := *t
			found = &cp
		}
		return nil
	})

	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *JSONRepository) UpdateFields(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error) {
	if patch.IsEmpty() {
		return r.GetByIDAndOwner(ctx, id, ownerID)
	}

	var updated models.Task

	err := r.db.Update(ctx, func(doc *jsondb.Document) error {
		t, ok := doc.Tasks[id]
		if !ok || t.OwnerID != ownerID {
			return common.ErrorNotFound
		}
		patch.Apply(t)
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *JSONRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	err := r.db.Update(ctx, func(doc *jsondb.Document) error {
		t, ok := doc.Tasks[id]
		if !ok || t.OwnerID != ownerID {
			return common.ErrorNotFound
		}
		delete(doc.Tasks, id)
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
