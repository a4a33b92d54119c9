package graphql

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	users UserService
	tasks TaskService
	log   logging.Logger
}

type credentialsArgs struct {
	Email    string
	Password string
}

func (r *Resolver) Signup(ctx context.Context, args credentialsArgs) (*authPayloadResolver, error) {
	p, err := r.users.Signup(ctx, args.Email, args.Password)
	if err != nil {
		return nil, toGraphQLError(ctx, r.log, "signup", err)
	}
	return &authPayloadResolver{root: r, p: p}, nil
}

func (r *Resolver) Login(ctx context.Context, args credentialsArgs) (*authPayloadResolver, error) {
	p, err := r.users.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, toGraphQLError(ctx, r.log, "login", err)
	}
	return &authPayloadResolver{root: r, p: p}, nil
}

func (r *Resolver) Me(ctx context.Context) *userResolver {
	u := r.users.CurrentUser(ctx)
	if u == nil {
		return nil
	}
	return &userResolver{root: r, u: u}
}

func (r *Resolver) ListTasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := r.tasks.List(ctx)
	if err != nil {
		return nil, toGraphQLError(ctx, r.log, "listTasks", err)
	}
	return wrapTasks(tasks), nil
}

func (r *Resolver) CreateTask(ctx context.Context, args struct{ Title string }) (*taskResolver, error) {
	t, err := r.tasks.Create(ctx, args.Title)
	if err != nil {
		return nil, toGraphQLError(ctx, r.log, "createTask", err)
	}
	return &taskResolver{t: t}, nil
}

type updateTaskArgs struct {
	ID        graphql.ID
	Title     *string
	Completed *bool
}

func (r *Resolver) UpdateTask(ctx context.Context, args updateTaskArgs) (*taskResolver, error) {
	t, err := r.tasks.Update(ctx, string(args.ID), models.TaskPatch{
		Title:     args.Title,
		Completed: args.Completed,
	})
	if err != nil {
		return nil, toGraphQLError(ctx, r.log, "updateTask", err)
	}
	return &taskResolver{t: t}, nil
}

func (r *Resolver) DeleteTask(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	ok, err := r.tasks.Delete(ctx, string(args.ID))
	if err != nil {
		return false, toGraphQLError(ctx, r.log, "deleteTask", err)
	}
	return ok, nil
}

type authPayloadResolver struct {
	root *Resolver
	p    *services.AuthPayload
}

func (a *authPayloadResolver) Token() string { return a.p.Token }

func (a *authPayloadResolver) User() *userResolver {
	return &userResolver{root: a.root, u: a.p.User}
}

// userResolver never exposes the password hash.
type userResolver struct {
	root *Resolver
	u    *models.User
}

func (u *userResolver) ID() graphql.ID { return graphql.ID(u.u.ID) }
func (u *userResolver) Email() string  { return u.u.Email }

// Tasks lists the user's own tasks. Every User the API returns is the
// caller, either resolved from the credential or just authenticated.
func (u *userResolver) Tasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := u.root.tasks.List(identity.WithUser(ctx, u.u))
	if err != nil {
		return nil, toGraphQLError(ctx, u.root.log, "User.tasks", err)
	}
	return wrapTasks(tasks), nil
}

type taskResolver struct {
	t *models.Task
}

func wrapTasks(tasks []*models.Task) []*taskResolver {
	out := make([]*taskResolver, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &taskResolver{t: t})
	}
	return out
}

func (t *taskResolver) ID() graphql.ID      { return graphql.ID(t.t.ID) }
func (t *taskResolver) Title() string       { return t.t.Title }
func (t *taskResolver) Completed() bool     { return t.t.Completed }
func (t *taskResolver) OwnerID() graphql.ID { return graphql.ID(t.t.OwnerID) }
func (t *taskResolver) CreatedAt() string   { return t.t.CreatedAtString() }
