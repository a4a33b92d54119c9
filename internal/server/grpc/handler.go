package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/rpc"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.AuthResponse, error) {
	p, err := s.users.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Signup", err)
	}
	return toAuthResponse(p), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.AuthResponse, error) {
	p, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Login", err)
	}
	return toAuthResponse(p), nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *rpc.MeRequest) (*rpc.MeResponse, error) {
	return &rpc.MeResponse{User: toUser(s.users.CurrentUser(ctx))}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, _ *rpc.ListTasksRequest) (*rpc.ListTasksResponse, error) {
	list, err := s.tasks.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "ListTasks", err)
	}

	resp := &rpc.ListTasksResponse{Tasks: make([]*rpc.Task, 0, len(list))}
	for _, t := range list {
		resp.Tasks = append(resp.Tasks, toTask(t))
	}
	return resp, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *rpc.CreateTaskRequest) (*rpc.TaskResponse, error) {
	t, err := s.tasks.Create(ctx, req.Title)
	if err != nil {
		return nil, s.toStatus(ctx, "CreateTask", err)
	}
	return &rpc.TaskResponse{Task: toTask(t)}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *rpc.UpdateTaskRequest) (*rpc.TaskResponse, error) {
	t, err := s.tasks.Update(ctx, req.ID, models.TaskPatch{Title: req.Title, Completed: req.Completed})
	if err != nil {
		return nil, s.toStatus(ctx, "UpdateTask", err)
	}
	return &rpc.TaskResponse{Task: toTask(t)}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *rpc.DeleteTaskRequest) (*rpc.DeleteTaskResponse, error) {
	ok, err := s.tasks.Delete(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "DeleteTask", err)
	}
	return &rpc.DeleteTaskResponse{Deleted: ok}, nil
}

func (s *GRPCServer) Ping(context.Context, *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "ok"}, nil
}

// toStatus maps service errors onto gRPC codes with the same messages the
// GraphQL API reports.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "User already exists")
	case errors.Is(err, common.ErrorInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Invalid credentials")
	case errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, "Not authenticated")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "Task not found")
	case errors.Is(err, common.ErrorValidation):
		msg := err.Error()
		msg, _ = strings.CutPrefix(msg, common.ErrorValidation.Error()+": ")
		return status.Error(codes.InvalidArgument, msg)
	default:
		s.logger.Error(ctx, "operation failed", "op", op, "error", err)
		return status.Error(codes.Internal, "Internal server error")
	}
}

func toAuthResponse(p *services.AuthPayload) *rpc.AuthResponse {
	return &rpc.AuthResponse{Token: p.Token, User: toUser(p.User)}
}

func toUser(u *models.User) *rpc.User {
	if u == nil {
		return nil
	}
	return &rpc.User{ID: u.ID, Email: u.Email}
}

func toTask(t *models.Task) *rpc.Task {
	return &rpc.Task{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAtString(),
	}
}
