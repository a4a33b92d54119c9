// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login and the current-user lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor used for password hashes.
const MinBcryptCost = 10

// AuthPayload is returned by signup and login.
type AuthPayload struct {
	Token string
	User  *models.User
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService provides authentication-related operations:
// - Signup: create users and mint a token
// - Login: verify credentials and mint a token
// - CurrentUser: report the caller resolved from the request credential
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	bcryptCost  int
	newID       func() string
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService. Costs below MinBcryptCost are
// raised to it.
func NewUserService(m repomanager.RepositoryManager, tokens TokenIssuer, cfg *config.Config, log logging.Logger) *UserService {
	cost := cfg.BcryptCost
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  cost,
		newID:       uuid.NewString,
		log:         log.With("module", "users"),
	}
}

// Signup registers a new account. Empty email or password fails with
// common.ErrorValidation; a taken email with common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, password string) (*AuthPayload, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users()

	// cheap check first so duplicates do not pay for a hash
	if _, err := repo.GetUserByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most 72 bytes", common.ErrorValidation)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)

	return s.authPayload(user)
}

// Login verifies credentials. An unknown email and a wrong password both
// fail with common.ErrorInvalidCredentials after a full bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	user, err := s.repomanager.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Debug(ctx, "password mismatch", "user_id", user.ID)
		return nil, common.ErrorInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)

	return s.authPayload(user)
}

// CurrentUser returns the caller, or nil for anonymous requests.
func (s *UserService) CurrentUser(ctx context.Context) *models.User {
	u, ok := identity.UserFromContext(ctx)
	if !ok {
		return nil
	}
	return u
}

func (s *UserService) authPayload(user *models.User) (*AuthPayload, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// dummy returns a hash with the service's cost, compared against when the
// email is unknown so both login failures take the same time.
func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("taskflow-placeholder-password"), s.bcryptCost)
		if err != nil {
			s.log.Error(context.Background(), "cannot build placeholder hash", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
