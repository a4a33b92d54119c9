package users

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/jsondb"
)

type JSONRepository struct {
	db *jsondb.DB
}

func NewJSONRepository(db *jsondb.DB) *JSONRepository {
	return &JSONRepository{db: db}
}

func (r *JSONRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user

	err := r.db.Update(ctx, func(doc *jsondb.Document) error {
		if _, ok := doc.Users[stored.ID]; ok {
			return common.ErrorAlreadyExists
		}
		for _, u := range doc.Users {
			if u.Email == stored.Email {
				return common.ErrorAlreadyExists
			}
		}
		cp := stored
		doc.Users[stored.ID] = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *JSONRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User

	_ = r.db.View(func(doc *jsondb.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				cp := *u
				found = &cp
				return nil
			}
		}
		return nil
	})

	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *JSONRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var found *models.User

	_ = r.db.View(func(doc *jsondb.Document) error {
		if u, ok := doc.Users[id]; ok {
			cp := *u
			found = &cp
		}
		return nil
	})

	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}
