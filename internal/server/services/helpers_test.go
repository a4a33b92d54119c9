package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/jsondb"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type env struct {
	rm       repomanager.RepositoryManager
	tokens   *auth.TokenService
	resolver *identity.Resolver
	users    *UserService
	tasks    *TaskService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	rm, err := repomanager.NewJSONRepositoryManager(context.Background(), jsondb.NewMemoryBlob())
	require.NoError(t, err)

	log, err := logging.New(io.Discard, logging.FormatJSON, "error")
	require.NoError(t, err)

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	cfg := &config.Config{BcryptCost: MinBcryptCost}

	return &env{
		rm:       rm,
		tokens:   tokens,
		resolver: identity.NewResolver(tokens, rm.Users(), log),
		users:    NewUserService(rm, tokens, cfg, log),
		tasks:    NewTaskService(rm, log),
	}
}

// as returns a request context resolved from token, the way transports
// build it.
func (e *env) as(token string) context.Context {
	ctx := context.Background()
	return identity.WithUser(ctx, e.resolver.Resolve(ctx, token))
}

func (e *env) signup(t *testing.T, email, password string) *AuthPayload {
	t.Helper()
	p, err := e.users.Signup(context.Background(), email, password)
	require.NoError(t, err)
	return p
}
