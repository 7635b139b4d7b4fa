// File: internal/infrastructure/rocketchat/client.go

// Package rocketchat implements the chat account provisioner: shadow-account
// registration, login, and the read-only channel membership fetch.
package rocketchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	"github.com/apurv-1/RC4Community/internal/domain/models"
)

const requestTimeout = 10 * time.Second

// Client talks to the RocketChat REST API.
type Client struct {
	baseURL        string
	usernameSuffix string
	emailDomain    string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a RocketChat client from configuration.
func NewClient(cfg config.RocketChatConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:        cfg.APIBaseURL,
		usernameSuffix: cfg.UsernameSuffix,
		emailDomain:    cfg.EmailDomain,
		httpClient:     &http.Client{Timeout: requestTimeout},
		logger:         logger.Named("rocketchat_client"),
	}
}

// ShadowUsername derives the deterministic shadow-account username from a
// GitHub login, e.g. "alice" -> "alice_rc4git".
func (c *Client) ShadowUsername(login string) string {
	return login + c.usernameSuffix
}

// shadowEmail derives the synthetic shadow-account email from a GitHub login.
func (c *Client) shadowEmail(login string) string {
	return fmt.Sprintf("%s@%s", login, c.emailDomain)
}

// Register creates a shadow account for the given profile. Not idempotent:
// repeating the call for the same login conflicts at the chat platform, so
// callers must gate on the ledger and local-record checks.
func (c *Client) Register(ctx context.Context, profile *models.Profile, password string) error {
	body := map[string]string{
		"name":     profile.Name,
		"email":    c.shadowEmail(profile.Username),
		"pass":     password,
		"username": c.ShadowUsername(profile.Username),
	}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/users.register", body, &result); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrProvision, err)
	}
	if !result.Success {
		c.logger.Warn("RocketChat rejected registration",
			zap.String("username", c.ShadowUsername(profile.Username)),
			zap.String("error", result.Error),
		)
		return fmt.Errorf("%w: %s", domainErrors.ErrProvision, result.Error)
	}
	return nil
}

// Login authenticates a shadow account and returns its session credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*models.ChatSession, error) {
	body := map[string]string{
		"user":     username,
		"password": password,
	}

	var result struct {
		Status string `json:"status"`
		Data   struct {
			AuthToken string `json:"authToken"`
			UserID    string `json:"userId"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/login", body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrChatLogin, err)
	}
	if result.Data.AuthToken == "" || result.Data.UserID == "" {
		c.logger.Warn("RocketChat login returned no session", zap.String("username", username))
		return nil, fmt.Errorf("%w: empty session in response", domainErrors.ErrChatLogin)
	}

	return &models.ChatSession{
		AuthToken: result.Data.AuthToken,
		UserID:    result.Data.UserID,
	}, nil
}

// ChannelMembers fetches the member list of a channel on behalf of an
// authenticated session.
func (c *Client) ChannelMembers(ctx context.Context, roomName string, session *models.ChatSession) ([]models.ChannelMember, error) {
	endpoint := fmt.Sprintf("%s/api/v1/channels.members?roomName=%s", c.baseURL, url.QueryEscape(roomName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUpstreamFetch, err)
	}
	req.Header.Set("X-Auth-Token", session.AuthToken)
	req.Header.Set("X-User-Id", session.UserID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("RocketChat members request failed", zap.String("room", roomName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: channels.members returned %d", domainErrors.ErrUpstreamFetch, resp.StatusCode)
	}

	var result struct {
		Members []models.ChannelMember `json:"members"`
		Success bool                   `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding members response: %v", domainErrors.ErrUpstreamFetch, err)
	}
	return result.Members, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("RocketChat API request failed", zap.String("url", url), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
