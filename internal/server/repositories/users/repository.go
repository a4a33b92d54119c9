// Package users contains the credential store: JSON document and PostgreSQL
// implementations of Repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Repository persists user accounts.
//
// Lookups return common.ErrorNotFound on a miss. Create returns
// common.ErrorAlreadyExists when the email is already registered; the check
// and the insert are atomic.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
