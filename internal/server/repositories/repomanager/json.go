package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/repositories/jsondb"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
)

// JSONRepositoryManager serves repositories over a single jsondb document.
type JSONRepositoryManager struct {
	db    *jsondb.DB
	users *users.JSONRepository
	tasks *tasks.JSONRepository
}

// NewJSONRepositoryManager opens the document stored in blob.
func NewJSONRepositoryManager(ctx context.Context, blob jsondb.Blob) (*JSONRepositoryManager, error) {
	db, err := jsondb.Open(ctx, blob)
	if err != nil {
		return nil, err
	}
	return &JSONRepositoryManager{
		db:    db,
		users: users.NewJSONRepository(db),
		tasks: tasks.NewJSONRepository(db),
	}, nil
}

func (m *JSONRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *JSONRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

// Close is a no-op; every mutation is already persisted.
func (m *JSONRepositoryManager) Close() error {
	return nil
}
