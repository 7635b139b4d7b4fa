// File: internal/domain/models/github.go
package models

// ProviderToken is the ephemeral access token obtained from GitHub during the
// code exchange. It lives for a single request and is never persisted.
type ProviderToken struct {
	AccessToken string
	Scopes      []string
}

// HasScope reports whether the token was granted the given scope.
func (t *ProviderToken) HasScope(scope string) bool {
	for _, s := range t.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Profile is the subset of the GitHub user profile the federation flow needs.
type Profile struct {
	Name      string
	Username  string
	AvatarURL string
}

// Repository carries the repository metadata surfaced by the read-only
// channel-info endpoint.
type Repository struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	OwnerLogin      string `json:"owner_login"`
	OpenIssuesCount int    `json:"open_issues_count"`
	WatchersCount   int    `json:"watchers_count"`
	StargazersCount int    `json:"stargazers_count"`
	Private         bool   `json:"private"`
}
