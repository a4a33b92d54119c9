// Package repomanager selects and owns the storage backend, handing out the
// users and tasks repositories bound to it.
package repomanager

import (
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
)

// RepositoryManager vends the repositories of one storage backend.
type RepositoryManager interface {
	Users() users.Repository
	Tasks() tasks.Repository
	Close() error
}
