package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Client is the API surface the CLI needs.
type Client interface {
	Close() error
	Signup(ctx context.Context, email, password string) (*rpc.User, error)
	Login(ctx context.Context, email, password string) (*rpc.User, error)
	Logout()
	LoggedIn() bool
	Me(ctx context.Context) (*rpc.User, error)
	ListTasks(ctx context.Context) ([]*rpc.Task, error)
	CreateTask(ctx context.Context, title string) (*rpc.Task, error)
	UpdateTask(ctx context.Context, id string, title *string, completed *bool) (*rpc.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// taskflowAPI is implemented by *rpc.TaskFlowClient.
type taskflowAPI interface {
	Signup(ctx context.Context, in *rpc.CredentialsRequest, opts ...grpc.CallOption) (*rpc.AuthResponse, error)
	Login(ctx context.Context, in *rpc.CredentialsRequest, opts ...grpc.CallOption) (*rpc.AuthResponse, error)
	Me(ctx context.Context, in *rpc.MeRequest, opts ...grpc.CallOption) (*rpc.MeResponse, error)
	ListTasks(ctx context.Context, in *rpc.ListTasksRequest, opts ...grpc.CallOption) (*rpc.ListTasksResponse, error)
	CreateTask(ctx context.Context, in *rpc.CreateTaskRequest, opts ...grpc.CallOption) (*rpc.TaskResponse, error)
	UpdateTask(ctx context.Context, in *rpc.UpdateTaskRequest, opts ...grpc.CallOption) (*rpc.TaskResponse, error)
	DeleteTask(ctx context.Context, in *rpc.DeleteTaskRequest, opts ...grpc.CallOption) (*rpc.DeleteTaskResponse, error)
	Ping(ctx context.Context, in *rpc.PingRequest, opts ...grpc.CallOption) (*rpc.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      taskflowAPI

	mu    sync.RWMutex
	token string
}

var _ Client = (*GRPCClient)(nil)

func NewTaskFlowClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.authorizationInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewTaskFlowClient(conn)
	return nil
}

func (s *GRPCClient) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func withAuthorization(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) authorizationInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.currentToken(); token != "" {
		ctx = withAuthorization(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) Signup(ctx context.Context, email, password string) (*rpc.User, error) {
	resp, err := s.client.Signup(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.Token)
	return resp.User, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*rpc.User, error) {
	resp, err := s.client.Login(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.setToken(resp.Token)
	return resp.User, nil
}

// Logout forgets the session token. Tokens are stateless on the server, so
// nothing is sent.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) LoggedIn() bool {
	return s.currentToken() != ""
}

// Me returns the current user, or ErrUnauthorized when the server no longer
// accepts the session.
func (s *GRPCClient) Me(ctx context.Context) (*rpc.User, error) {
	resp, err := s.client.Me(ctx, &rpc.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.User == nil {
		return nil, ErrUnauthorized
	}
	return resp.User, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]*rpc.Task, error) {
	resp, err := s.client.ListTasks(ctx, &rpc.ListTasksRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, title string) (*rpc.Task, error) {
	resp, err := s.client.CreateTask(ctx, &rpc.CreateTaskRequest{Title: title})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, title *string, completed *bool) (*rpc.Task, error) {
	resp, err := s.client.UpdateTask(ctx, &rpc.UpdateTaskRequest{ID: id, Title: title, Completed: completed})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.client.DeleteTask(ctx, &rpc.DeleteTaskRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx, &rpc.PingRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
