package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fintracker/internal/entities"
)

func TestService_Authenticate(t *testing.T) {
	store := &fakeCredentials{accounts: []entities.Account{
		{ID: 3, Username: "alice", Email: "a@example.com", Password: "secretX"},
	}}
	svc := NewService(store)
	ctx := context.Background()

	account, err := svc.Authenticate(ctx, "alice", "secretX")
	require.NoError(t, err)
	assert.Equal(t, uint(3), account.ID)

	_, err = svc.Authenticate(ctx, "alice", "secretx")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secretX")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.findErr = errors.New("connection reset")
	_, err = svc.Authenticate(ctx, "alice", "secretX")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestService_Register(t *testing.T) {
	store := &fakeCredentials{}
	svc := NewService(store)
	ctx := context.Background()

	input := RegistrationInput{Username: "bob", Name: "Bob", Email: "b@x.com", Password: "pw"}
	account, err := svc.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, uint(1), account.ID)
	assert.Equal(t, "pw", account.Password, "credentials are stored as given")

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Len(t, store.accounts, 1)

	store.insertErr = errors.New("read-only database")
	_, err = svc.Register(ctx, RegistrationInput{Username: "carol", Email: "c@x.com"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrAlreadyRegistered)
}
