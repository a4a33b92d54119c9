// Package server wires configuration, storage, services and transports into
// the TaskFlow server process. GraphQL is served over HTTP and the same
// operations are exposed over gRPC for the command-line client.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/graphql"
	"github.com/dmitrijs2005/taskflow/internal/server/httpserver"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/metrics"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"github.com/graph-gophers/graphql-go/relay"

	gs "github.com/dmitrijs2005/taskflow/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *httpserver.HTTPServer
	grpcServer  *gs.GRPCServer
}

// NewApp validates c, opens the configured storage and builds both servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return newApp(c, logger, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) *App {
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)
	us := services.NewUserService(rm, tokens, c, logger)
	ts := services.NewTaskService(rm, logger)
	resolver := identity.NewResolver(tokens, rm.Users(), logger)
	m := metrics.New()

	schema := graphql.NewSchema(us, ts, logger, graphql.Options{MaxDepth: c.GraphQLMaxDepth})
	router := httpserver.NewRouter(httpserver.RouterDeps{
		GraphQL:        &relay.Handler{Schema: schema},
		Resolver:       resolver,
		Metrics:        m,
		Logger:         logger,
		AllowedOrigins: c.AllowedOrigins,
	})

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		httpServer:  httpserver.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ts, resolver, m),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs fn and cancels the whole app when it fails, so one broken
// listener takes the other down too.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "server stopped with error", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is done, a termination signal arrives or a server
// fails. Storage is closed after both servers have stopped.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
