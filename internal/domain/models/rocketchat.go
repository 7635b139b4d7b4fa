// File: internal/domain/models/rocketchat.go
package models

// ChatSession holds the RocketChat session credentials returned by a
// successful login. They are handed to the caller as cookies and never stored
// server-side.
type ChatSession struct {
	AuthToken string
	UserID    string
}

// ChannelMember is a single member entry from channels.members.
type ChannelMember struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}
