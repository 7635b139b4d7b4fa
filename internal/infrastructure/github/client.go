// File: internal/infrastructure/github/client.go

// Package github implements the external identity client: OAuth code
// exchange plus the few REST reads the federation flow needs.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/apurv-1/RC4Community/internal/config"
	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	"github.com/apurv-1/RC4Community/internal/domain/models"
)

const (
	requestTimeout = 10 * time.Second
	acceptHeader   = "application/vnd.github.v3+json"
)

// Client talks to the GitHub OAuth and REST APIs.
type Client struct {
	oauthConfig    *oauth2.Config
	apiBaseURL     string
	requiredScopes []string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a GitHub client from configuration.
func NewClient(cfg config.GitHubConfig, logger *zap.Logger) *Client {
	return &Client{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.RequiredScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBaseURL:     cfg.APIBaseURL,
		requiredScopes: cfg.RequiredScopes,
		httpClient:     &http.Client{Timeout: requestTimeout},
		logger:         logger.Named("github_client"),
	}
}

// ExchangeCode swaps an authorization code for a provider token and validates
// that every required scope was granted. The granted scope list comes from
// the token response's comma-separated "scope" field.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*models.ProviderToken, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		c.logger.Error("OAuth code exchange failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrAuthExchange, err)
	}

	scopeRaw, _ := token.Extra("scope").(string)
	providerToken := &models.ProviderToken{
		AccessToken: token.AccessToken,
		Scopes:      splitScopes(scopeRaw),
	}

	for _, required := range c.requiredScopes {
		if !providerToken.HasScope(required) {
			c.logger.Warn("Token missing required scope",
				zap.String("required", required),
				zap.Strings("granted", providerToken.Scopes),
			)
			return nil, fmt.Errorf("%w: missing %q", domainErrors.ErrInsufficientScope, required)
		}
	}

	return providerToken, nil
}

// FetchPrimaryEmail returns the primary verified email of the authenticated
// user, falling back to the first listed address.
func (c *Client) FetchPrimaryEmail(ctx context.Context, token *models.ProviderToken) (string, error) {
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := c.getJSON(ctx, c.apiBaseURL+"/user/emails", token.AccessToken, &emails); err != nil {
		return "", err
	}
	if len(emails) == 0 {
		return "", fmt.Errorf("%w: no email addresses returned", domainErrors.ErrUpstreamFetch)
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	return emails[0].Email, nil
}

// FetchProfile returns the profile fields used to provision the shadow
// account. DisplayName falls back to the login when the profile name is
// unset.
func (c *Client) FetchProfile(ctx context.Context, token *models.ProviderToken) (*models.Profile, error) {
	var raw struct {
		Name      string `json:"name"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.getJSON(ctx, c.apiBaseURL+"/user", token.AccessToken, &raw); err != nil {
		return nil, err
	}

	name := raw.Name
	if name == "" {
		name = raw.Login
	}
	return &models.Profile{
		Name:      name,
		Username:  raw.Login,
		AvatarURL: raw.AvatarURL,
	}, nil
}

// FetchRepository returns the repository metadata shown in the channel-info
// panel. accessToken is optional; when present it unlocks private
// repositories.
func (c *Client) FetchRepository(ctx context.Context, owner, repo, accessToken string) (*models.Repository, error) {
	var raw struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Language    string `json:"language"`
		Owner       struct {
			Login string `json:"login"`
		} `json:"owner"`
		OpenIssuesCount int  `json:"open_issues_count"`
		WatchersCount   int  `json:"watchers_count"`
		StargazersCount int  `json:"stargazers_count"`
		Private         bool `json:"private"`
	}
	url := fmt.Sprintf("%s/repos/%s/%s", c.apiBaseURL, owner, repo)
	if err := c.getJSON(ctx, url, accessToken, &raw); err != nil {
		return nil, err
	}

	return &models.Repository{
		Name:            raw.Name,
		Description:     raw.Description,
		Language:        raw.Language,
		OwnerLogin:      raw.Owner.Login,
		OpenIssuesCount: raw.OpenIssuesCount,
		WatchersCount:   raw.WatchersCount,
		StargazersCount: raw.StargazersCount,
		Private:         raw.Private,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrUpstreamFetch, err)
	}
	req.Header.Set("Accept", acceptHeader)
	if accessToken != "" {
		req.Header.Set("Authorization", "token "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GitHub API request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", domainErrors.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("GitHub API returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: %s returned %d", domainErrors.ErrUpstreamFetch, url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", domainErrors.ErrUpstreamFetch, url, err)
	}
	return nil
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
