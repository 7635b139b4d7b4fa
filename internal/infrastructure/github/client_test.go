// File: internal/infrastructure/github/client_test.go
package github_test

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
	"github.com/apurv-1/RC4Community/internal/infrastructure/github"
)

// newTestClient wires a Client against a fake GitHub served by mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *github.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := config.GitHubConfig{
		ClientID:       "test-client-id",
		ClientSecret:   "test-client-secret",
		AuthURL:        server.URL + "/login/oauth/authorize",
		TokenURL:       server.URL + "/login/oauth/access_token",
		APIBaseURL:     server.URL,
		RequiredScopes: []string{"read:org", "user:email"},
	}
	return github.NewClient(cfg, zap.NewNop())
}

func tokenEndpoint(t *testing.T, scope string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-client-id", r.FormValue("client_id"))
		assert.Equal(t, "test-client-secret", r.FormValue("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "gho_testtoken",
			"token_type":   "bearer",
			"scope":        scope,
		})
	}
}

func TestExchangeCode_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", tokenEndpoint(t, "read:org,user:email,repo"))
	client := newTestClient(t, mux)

	token, err := client.ExchangeCode(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "gho_testtoken", token.AccessToken)
	assert.Equal(t, []string{"read:org", "user:email", "repo"}, token.Scopes)
}

func TestExchangeCode_InsufficientScope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", tokenEndpoint(t, "read:org"))
	client := newTestClient(t, mux)

	_, err := client.ExchangeCode(context.Background(), "good-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientScope)
}

func TestExchangeCode_ExchangeFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	client := newTestClient(t, mux)

	_, err := client.ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrAuthExchange)
}

func TestFetchPrimaryEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token gho_testtoken", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"email": "secondary@example.com", "primary": false},
			{"email": "primary@example.com", "primary": true},
		})
	})
	client := newTestClient(t, mux)

	email, err := client.FetchPrimaryEmail(context.Background(), &models.ProviderToken{AccessToken: "gho_testtoken"})
	require.NoError(t, err)
	assert.Equal(t, "primary@example.com", email)
}

func TestFetchPrimaryEmail_FallsBackToFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"email": "only@example.com", "primary": false},
		})
	})
	client := newTestClient(t, mux)

	email, err := client.FetchPrimaryEmail(context.Background(), &models.ProviderToken{AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "only@example.com", email)
}

func TestFetchPrimaryEmail_EmptyList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	})
	client := newTestClient(t, mux)

	_, err := client.FetchPrimaryEmail(context.Background(), &models.ProviderToken{AccessToken: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrUpstreamFetch)
}

func TestFetchProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"name":       "The Octocat",
			"login":      "octocat",
			"avatar_url": "https://avatars.example.com/octocat.png",
		})
	})
	client := newTestClient(t, mux)

	profile, err := client.FetchProfile(context.Background(), &models.ProviderToken{AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "The Octocat", profile.Name)
	assert.Equal(t, "octocat", profile.Username)
	assert.Equal(t, "https://avatars.example.com/octocat.png", profile.AvatarURL)
}

func TestFetchProfile_NameFallsBackToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"login": "octocat"})
	})
	client := newTestClient(t, mux)

	profile, err := client.FetchProfile(context.Background(), &models.ProviderToken{AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Name)
}

func TestFetchRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/rocketchat/rc4community", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "anonymous request should carry no token")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":              "rc4community",
			"description":       "Community platform",
			"language":          "JavaScript",
			"owner":             map[string]string{"login": "rocketchat"},
			"open_issues_count": 12,
			"watchers_count":    34,
			"stargazers_count":  56,
			"private":           false,
		})
	})
	client := newTestClient(t, mux)

	repo, err := client.FetchRepository(context.Background(), "rocketchat", "rc4community", "")
	require.NoError(t, err)
	assert.Equal(t, "rc4community", repo.Name)
	assert.Equal(t, "rocketchat", repo.OwnerLogin)
	assert.Equal(t, 12, repo.OpenIssuesCount)
	assert.False(t, repo.Private)
}

func TestFetchRepository_UpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/rocketchat/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, mux)

	_, err := client.FetchRepository(context.Background(), "rocketchat", "missing", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrUpstreamFetch)
}
