package identity

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]*models.User
	err   error
	panic bool
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.panic {
		panic("lookup exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func TestResolver_Resolve(t *testing.T) {
	tokens := auth.NewTokenService([]byte("secret"), time.Hour)
	alice := &models.User{ID: "alice", Email: "a@x.com"}

	aliceToken, err := tokens.Issue("alice")
	require.NoError(t, err)
	ghostToken, err := tokens.Issue("ghost")
	require.NoError(t, err)
	foreignToken, err := auth.NewTokenService([]byte("other"), time.Hour).Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		users *fakeUsers
		want  *models.User
		log   string
	}{
		{name: "raw token", token: aliceToken, want: alice},
		{name: "bearer prefix", token: "Bearer " + aliceToken, want: alice},
		{name: "empty", token: ""},
		{name: "whitespace", token: "   "},
		{name: "garbage", token: "Bearer nope"},
		{name: "wrong secret", token: foreignToken},
		{name: "deleted user", token: ghostToken},
		{name: "storage failure", token: aliceToken, users: &fakeUsers{err: errors.New("disk gone")}, log: "user lookup failed"},
		{name: "panicking storage", token: aliceToken, users: &fakeUsers{panic: true}, log: "identity resolution panicked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := tt.users
			if users == nil {
				users = &fakeUsers{users: map[string]*models.User{"alice": alice}}
			}
			var buf bytes.Buffer
			log, err := logging.New(&buf, logging.FormatJSON, "debug")
			require.NoError(t, err)

			r := NewResolver(tokens, users, log)

			var got *models.User
			require.NotPanics(t, func() { got = r.Resolve(context.Background(), tt.token) })
			assert.Equal(t, tt.want, got)
			if tt.log != "" {
				assert.Contains(t, buf.String(), tt.log)
			}
			assert.NotContains(t, buf.String(), aliceToken)
		})
	}
}

func TestRequire(t *testing.T) {
	_, err := Require(context.Background())
	require.ErrorIs(t, err, common.ErrorUnauthenticated)

	ctx := WithUser(context.Background(), nil)
	_, err = Require(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthenticated)

	alice := &models.User{ID: "alice"}
	ctx = WithUser(context.Background(), alice)
	got, err := Require(ctx)
	require.NoError(t, err)
	assert.Same(t, alice, got)

	fromCtx, ok := UserFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, alice, fromCtx)
}
