// File: internal/infrastructure/security/jwt_service_test.go
package security_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurv-1/RC4Community/internal/domain/models"
	"github.com/apurv-1/RC4Community/internal/infrastructure/security"
)

func testUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		Email:       "octocat@example.com",
		Username:    "octocat_rc4git",
		DisplayName: "The Octocat",
		AvatarURL:   "https://avatars.example.com/octocat.png",
	}
}

func TestJWTService_SignAndParse(t *testing.T) {
	service := security.NewJWTService("test-secret", "rc4community", time.Hour)
	user := testUser()

	token, err := service.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.DisplayName, claims.DisplayName)
	assert.Equal(t, user.AvatarURL, claims.AvatarURL)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "rc4community", claims.Issuer)
}

func TestJWTService_Parse_WrongSecret(t *testing.T) {
	signer := security.NewJWTService("secret-a", "rc4community", time.Hour)
	verifier := security.NewJWTService("secret-b", "rc4community", time.Hour)

	token, err := signer.Sign(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestJWTService_Parse_Expired(t *testing.T) {
	service := security.NewJWTService("test-secret", "rc4community", -time.Minute)

	token, err := service.Sign(testUser())
	require.NoError(t, err)

	_, err = service.Parse(token)
	assert.Error(t, err)
}

func TestJWTService_Parse_Garbage(t *testing.T) {
	service := security.NewJWTService("test-secret", "rc4community", time.Hour)

	_, err := service.Parse("not.a.token")
	assert.Error(t, err)
}
