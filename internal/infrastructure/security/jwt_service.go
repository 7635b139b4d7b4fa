// File: internal/infrastructure/security/jwt_service.go
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apurv-1/RC4Community/internal/domain/models"
)

// IdentityClaims is the payload of the rc4git_token cookie: the local user
// record minus the credential.
type IdentityClaims struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	jwt.RegisteredClaims
}

// JWTService signs and parses the local identity token.
type JWTService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewJWTService creates a JWTService with an HS256 signing secret.
func NewJWTService(secret, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), issuer: issuer, tokenTTL: tokenTTL}
}

// Sign issues an identity token for the given user.
func (s *JWTService) Sign(user *models.User) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return signed, nil
}

// Parse validates a token string and returns its claims.
func (s *JWTService) Parse(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("identity token is invalid")
	}
	return claims, nil
}
