// File: internal/infrastructure/database/user_postgres_repository.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	"github.com/apurv-1/RC4Community/internal/domain/models"
	"github.com/apurv-1/RC4Community/internal/domain/repository"
)

// pgxUserRepository implements repository.UserRepository using pgx.
type pgxUserRepository struct {
	db *pgxpool.Pool
}

// NewPgxUserRepository creates a new instance of pgxUserRepository.
func NewPgxUserRepository(db *pgxpool.Pool) repository.UserRepository {
	return &pgxUserRepository{db: db}
}

// Create persists a new user to the database.
func (r *pgxUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			id, email, display_name, username, avatar_url, rc_password_enc,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.DisplayName, user.Username, user.AvatarURL,
		user.RCPasswordEnc, user.CreatedAt, user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their provider email address.
func (r *pgxUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, username, avatar_url, rc_password_enc,
			created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.Username, &user.AvatarURL,
		&user.RCPasswordEnc, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}
