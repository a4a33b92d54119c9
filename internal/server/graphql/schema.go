// Package graphql exposes the user and task services as a GraphQL schema
// served over HTTP.
package graphql

import (
	"context"
	_ "embed"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// UserService is the part of services.UserService used by the resolvers.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*services.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*services.AuthPayload, error)
	CurrentUser(ctx context.Context) *models.User
}

// TaskService is the part of services.TaskService used by the resolvers.
type TaskService interface {
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, title string) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Options tune schema execution.
type Options struct {
	// MaxDepth limits query nesting; zero means unlimited.
	MaxDepth int
}

// NewSchema parses the embedded SDL and binds it to the services.
func NewSchema(users UserService, tasks TaskService, log logging.Logger, opts Options) *graphql.Schema {
	log = log.With("module", "graphql")

	schemaOpts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{log: log}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxDepth(opts.MaxDepth))
	}

	root := &Resolver{users: users, tasks: tasks, log: log}

	return graphql.MustParseSchema(schemaSDL, root, schemaOpts...)
}

type panicLogger struct {
	log logging.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.log.Error(ctx, "graphql resolver panic", "panic", value)
}
