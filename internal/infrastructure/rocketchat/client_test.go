// File: internal/infrastructure/rocketchat/client_test.go
package rocketchat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	"github.com/apurv-1/RC4Community/internal/domain/models"
	"github.com/apurv-1/RC4Community/internal/infrastructure/rocketchat"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *rocketchat.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := config.RocketChatConfig{
		APIBaseURL:     server.URL,
		UsernameSuffix: "_rc4git",
		EmailDomain:    "rc4git.com",
	}
	return rocketchat.NewClient(cfg, zap.NewNop())
}

func TestShadowUsername(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	assert.Equal(t, "octocat_rc4git", client.ShadowUsername("octocat"))
}

func TestRegister_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users.register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "The Octocat", body["name"])
		assert.Equal(t, "octocat@rc4git.com", body["email"])
		assert.Equal(t, "octocat_rc4git", body["username"])
		assert.Equal(t, "hunter22", body["pass"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	client := newTestClient(t, mux)

	profile := &models.Profile{Name: "The Octocat", Username: "octocat"}
	require.NoError(t, client.Register(context.Background(), profile, "hunter22"))
}

func TestRegister_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users.register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Username is already in use",
		})
	})
	client := newTestClient(t, mux)

	err := client.Register(context.Background(), &models.Profile{Username: "octocat"}, "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrProvision)
	assert.Contains(t, err.Error(), "already in use")
}

func TestLogin_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "octocat_rc4git", body["user"])
		assert.Equal(t, "hunter22", body["password"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]string{
				"authToken": "tok-123",
				"userId":    "uid-456",
			},
		})
	})
	client := newTestClient(t, mux)

	session, err := client.Login(context.Background(), "octocat_rc4git", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.AuthToken)
	assert.Equal(t, "uid-456", session.UserID)
}

func TestLogin_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "octocat_rc4git", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrChatLogin)
}

func TestLogin_EmptySession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]string{},
		})
	})
	client := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "octocat_rc4git", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrChatLogin)
}

func TestChannelMembers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/channels.members", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "general", r.URL.Query().Get("roomName"))
		assert.Equal(t, "tok-123", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "uid-456", r.Header.Get("X-User-Id"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"members": []map[string]string{
				{"_id": "m1", "username": "alice_rc4git", "name": "Alice", "status": "online"},
				{"_id": "m2", "username": "bob_rc4git", "name": "Bob", "status": "offline"},
			},
		})
	})
	client := newTestClient(t, mux)

	session := &models.ChatSession{AuthToken: "tok-123", UserID: "uid-456"}
	members, err := client.ChannelMembers(context.Background(), "general", session)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice_rc4git", members[0].Username)
	assert.Equal(t, "offline", members[1].Status)
}

func TestChannelMembers_UpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/channels.members", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	client := newTestClient(t, mux)

	_, err := client.ChannelMembers(context.Background(), "general", &models.ChatSession{AuthToken: "t", UserID: "u"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrUpstreamFetch)
}
