package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/rpc"
	"github.com/dmitrijs2005/taskflow/internal/server/metrics"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService served over gRPC.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*services.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*services.AuthPayload, error)
	CurrentUser(ctx context.Context) *models.User
}

// TaskService is the part of services.TaskService served over gRPC.
type TaskService interface {
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, title string) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IdentityResolver turns the authorization metadata value into a user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) *models.User
}

type GRPCServer struct {
	address  string
	users    UserService
	tasks    TaskService
	resolver IdentityResolver
	metrics  *metrics.Metrics
	logger   logging.Logger
}

var _ rpc.TaskFlowServer = (*GRPCServer)(nil)

// NewGRPCServer builds the server. m may be nil to skip metrics.
func NewGRPCServer(a string, l logging.Logger, us UserService, ts TaskService, r IdentityResolver, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		tasks:    ts,
		resolver: r,
		metrics:  m,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.observeInterceptor, s.identityInterceptor))
	rpc.RegisterTaskFlowServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()
	defer close(stopped)

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
