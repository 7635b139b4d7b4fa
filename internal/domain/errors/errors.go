// File: internal/domain/errors/errors.go
package errors

import "errors"

// Error taxonomy for the federation login flow. Handlers map these to HTTP
// status codes; everything except ErrInsufficientScope collapses to 500.
var (
	// Identity provider errors
	ErrAuthExchange      = errors.New("failed to exchange authorization code")
	ErrInsufficientScope = errors.New("granted scopes are insufficient")
	ErrUpstreamFetch     = errors.New("identity provider request failed")

	// Chat platform errors
	ErrProvision = errors.New("chat account provisioning failed")
	ErrChatLogin = errors.New("chat platform login failed")

	// Local store errors
	ErrLocalPersist = errors.New("failed to persist local user record")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Credential handling errors
	ErrCredentialDecrypt = errors.New("failed to decrypt stored credential")
)
