// File: internal/domain/repository/user_repository.go
package repository

import (
	"context"

	"github.com/apurv-1/RC4Community/internal/domain/models"
)

// UserRepository is the persistence contract for local user records.
type UserRepository interface {
	// Create inserts a new user. Returns domain errors.ErrEmailExists when
	// the email is already taken.
	Create(ctx context.Context, user *models.User) error
	// FindByEmail returns the user for the given provider email, or
	// errors.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// PendingCredentialStore is the Secret Ledger contract: a durable mapping
// from email to an encrypted chat credential, covering the window between
// chat-account creation and local commit.
type PendingCredentialStore interface {
	// Get returns the stored credential and whether an entry exists.
	Get(email string) (string, bool, error)
	// Put adds or overwrites an entry and persists synchronously.
	Put(email, credential string) error
	// Remove deletes an entry and persists synchronously. Removing an
	// absent entry is not an error.
	Remove(email string) error
}
