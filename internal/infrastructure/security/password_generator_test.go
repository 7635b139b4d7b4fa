// File: internal/infrastructure/security/password_generator_test.go
package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurv-1/RC4Community/internal/infrastructure/security"
)

func TestGeneratePassword_Length(t *testing.T) {
	for _, length := range []int{8, 16, 24, 64} {
		password, err := security.GeneratePassword(length)
		require.NoError(t, err)
		assert.Len(t, password, length)
	}
}

func TestGeneratePassword_Alphabet(t *testing.T) {
	password, err := security.GeneratePassword(128)
	require.NoError(t, err)

	for _, r := range password {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		assert.True(t, isDigit || isLower || isUpper,
			"unexpected character %q in generated password", r)
	}
}

func TestGeneratePassword_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		password, err := security.GeneratePassword(24)
		require.NoError(t, err)
		_, duplicate := seen[password]
		assert.False(t, duplicate, "generated passwords should not repeat")
		seen[password] = struct{}{}
	}
}

func TestGeneratePassword_InvalidLength(t *testing.T) {
	_, err := security.GeneratePassword(0)
	assert.Error(t, err)

	_, err = security.GeneratePassword(-5)
	assert.Error(t, err)
}
