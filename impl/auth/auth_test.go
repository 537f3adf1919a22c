package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factureme/entity"
)

type memUsers struct {
	users map[string]*entity.User
}

func (m *memUsers) GetUserByToken(_ context.Context, token string) (*entity.User, error) {
	if u, ok := m.users[token]; ok {
		return u, nil
	}
	return nil, entity.ErrNotFound
}

func (m *memUsers) CreateUser(_ context.Context, user *entity.User) error {
	user.IdUser = int64(len(m.users) + 1)
	m.users[user.Token] = user
	return nil
}

func TestRegisterIssuesToken(t *testing.T) {
	a := New(&memUsers{users: map[string]*entity.User{}})
	user, err := a.Register(context.Background(), &entity.User{Username: "marie", IsAdmin: true})
	require.NoError(t, err)
	_, err = uuid.Parse(user.Token)
	assert.NoError(t, err)
	assert.False(t, user.IsAdmin)

	found, err := a.UserByToken(context.Background(), user.Token)
	require.NoError(t, err)
	assert.Equal(t, "marie", found.Username)

	_, err = a.UserByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestNoDatabase(t *testing.T) {
	a := New(nil)
	_, err := a.UserByToken(context.Background(), "x")
	assert.Error(t, err)
	_, err = a.Register(context.Background(), &entity.User{})
	assert.Error(t, err)
}
