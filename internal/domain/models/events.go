// File: internal/domain/models/events.go
package models

import "time"

// Event payloads published to Kafka wrapped in a CloudEvents envelope.

// UserFederatedEvent is emitted when a fresh RocketChat shadow account and
// local record are created for a GitHub identity.
type UserFederatedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// UserRepairedEvent is emitted when a pending ledger credential is consumed,
// i.e. a shadow account existed without a local record and the record was
// re-established.
type UserRepairedEvent struct {
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedInEvent is emitted on every successful federation login.
type UserLoggedInEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
