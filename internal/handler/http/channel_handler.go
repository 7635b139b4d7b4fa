// File: internal/handler/http/channel_handler.go
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/domain/models"
)

// GitHubPrivateTokenCookie is the client-held cookie carrying a personal
// token for private repository reads.
const GitHubPrivateTokenCookie = "gh_private_repo_token"

// RepositoryReader fetches repository metadata from GitHub.
type RepositoryReader interface {
	FetchRepository(ctx context.Context, owner, repo, accessToken string) (*models.Repository, error)
}

// MemberReader fetches channel members from RocketChat.
type MemberReader interface {
	ChannelMembers(ctx context.Context, roomName string, session *models.ChatSession) ([]models.ChannelMember, error)
}

// ChannelHandler serves the read-only channel-info endpoints backing the UI
// panel: repository metadata and channel membership.
type ChannelHandler struct {
	repos   RepositoryReader
	members MemberReader
	logger  *zap.Logger
}

// NewChannelHandler creates a ChannelHandler.
func NewChannelHandler(repos RepositoryReader, members MemberReader, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{
		repos:   repos,
		members: members,
		logger:  logger.Named("channel_handler"),
	}
}

// GetRepository handles GET /api/v1/repos/:owner/:repo. An optional
// gh_private_repo_token cookie is forwarded so private repositories resolve.
func (h *ChannelHandler) GetRepository(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")

	token, _ := c.Cookie(GitHubPrivateTokenCookie)

	repository, err := h.repos.FetchRepository(c.Request.Context(), owner, repo, token)
	if err != nil {
		RespondWithError(c, http.StatusBadGateway, "Could not fetch repository information", err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, repository)
}

// GetChannelMembers handles GET /api/v1/channels/:roomName/members using the
// caller's RocketChat session cookies.
func (h *ChannelHandler) GetChannelMembers(c *gin.Context) {
	authToken, _ := c.Cookie(CookieChatToken)
	userID, _ := c.Cookie(CookieChatUserID)
	if authToken == "" || userID == "" {
		RespondWithMessage(c, http.StatusUnauthorized, "Chat session cookies are required")
		return
	}

	session := &models.ChatSession{AuthToken: authToken, UserID: userID}
	members, err := h.members.ChannelMembers(c.Request.Context(), c.Param("roomName"), session)
	if err != nil {
		RespondWithError(c, http.StatusBadGateway, "Could not fetch channel members", err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"members": members})
}
