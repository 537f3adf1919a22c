package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factureme/entity"
)

type Database interface {
	GetUserByToken(ctx context.Context, token string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
}

type Auth struct {
	db Database
}

func New(db Database) *Auth {
	return &Auth{db: db}
}

func (a *Auth) UserByToken(ctx context.Context, token string) (*entity.User, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	return a.db.GetUserByToken(ctx, token)
}

// Register stores a new user and issues its api token
func (a *Auth) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	user.Token = uuid.NewString()
	user.IsAdmin = false
	if err := a.db.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
