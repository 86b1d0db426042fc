// Package accounts is the credential store: it looks accounts up by their
// credentials and persists new registrations.
//
// # Usage
//
//	repo := accounts.NewRepository(db)
//	account, err := repo.FindByCredentials(ctx, username, password)
//	if errors.Is(err, accounts.ErrNotFound) { ... }
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/fintracker/internal/entities"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("username or email already registered")
)

// Repository handles all account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new accounts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCredentials returns the account whose username and password both
// match exactly. When several rows match, the one with the lowest ID wins.
func (r *Repository) FindByCredentials(ctx context.Context, username, password string) (*entities.Account, error) {
	var found []entities.Account
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		Order("id ASC").
		Limit(1).
		Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

// Insert persists a new account. Returns ErrDuplicate when the username or
// email is already taken.
func (r *Repository) Insert(ctx context.Context, account *entities.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// Count returns the number of registered accounts.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Account{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Older sqlite driver builds do not translate constraint errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
