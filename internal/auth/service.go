package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/fintracker/internal/database/accounts"
	"github.com/mrlokans/fintracker/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyRegistered  = errors.New("username or email is already registered")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
)

// CredentialStore is the persistence the auth flows need.
// accounts.Repository satisfies it.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, username, password string) (*entities.Account, error)
	Insert(ctx context.Context, account *entities.Account) error
}

// RegistrationInput holds the fields of the registration form.
type RegistrationInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

// Service handles login and registration against the credential store.
type Service struct {
	store CredentialStore
}

// NewService creates a new authentication service.
func NewService(store CredentialStore) *Service {
	return &Service{store: store}
}

// Authenticate returns the account matching username and password exactly.
// Credentials are compared as stored; no hashing is applied.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.Account, error) {
	account, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return account, nil
}

// Register persists a new account. It never signs the account in.
func (s *Service) Register(ctx context.Context, input RegistrationInput) (*entities.Account, error) {
	account := &entities.Account{
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}

	if err := s.store.Insert(ctx, account); err != nil {
		if errors.Is(err, accounts.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return account, nil
}
