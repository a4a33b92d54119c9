// Package identity turns a bearer credential into the calling user.
//
// Resolution is fail-open: anything wrong with the credential yields an
// anonymous caller. Operations that need a user enforce it separately with
// Require.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// TokenVerifier checks a credential and returns the user id it names.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup finds users by id.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Resolver maps credentials to users.
type Resolver struct {
	tokens TokenVerifier
	users  UserLookup
	log    logging.Logger
}

func NewResolver(tokens TokenVerifier, users UserLookup, log logging.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, log: log.With("module", "identity")}
}

// Resolve returns the user named by token, or nil when the token is empty,
// invalid, expired, or names a user that no longer exists. It never fails.
func (r *Resolver) Resolve(ctx context.Context, token string) (user *models.User) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error(ctx, "identity resolution panicked", "panic", p)
			user = nil
		}
	}()

	if strings.TrimSpace(token) == "" {
		return nil
	}

	userID, err := r.tokens.Verify(token)
	if err != nil {
		r.log.Debug(ctx, "rejected credential", "reason", err.Error())
		return nil
	}

	u, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			r.log.Warn(ctx, "user lookup failed, treating caller as anonymous", "user_id", userID, "error", err)
		}
		return nil
	}

	return u
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying user. A nil user leaves ctx
// anonymous.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}

// Require returns the caller or common.ErrorUnauthenticated.
func Require(ctx context.Context) (*models.User, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil, common.ErrorUnauthenticated
	}
	return u, nil
}
