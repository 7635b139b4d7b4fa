// File: internal/domain/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the local mirror of a GitHub identity. One row exists per distinct
// provider email; records are immutable within the login flow.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url"`
	// RCPasswordEnc holds the hex-encoded AES-GCM ciphertext of the
	// RocketChat shadow-account password.
	RCPasswordEnc string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
