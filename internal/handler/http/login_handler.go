// File: internal/handler/http/login_handler.go
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/apurv-1/RC4Community/internal/domain/errors"
	appService "github.com/apurv-1/RC4Community/internal/service"
)

// Cookie names set on a successful federation login.
const (
	CookieChatToken     = "rc_token"
	CookieChatUserID    = "rc_uid"
	CookieIdentityToken = "rc4git_token"
)

// FederationLoginService is the slice of the federation service the login
// handler needs.
type FederationLoginService interface {
	Login(ctx context.Context, code string, meta appService.ClientMeta) (*appService.LoginResult, error)
}

// LoginHandler serves GET /login, the account-federation entry point.
type LoginHandler struct {
	federation FederationLoginService
	logger     *zap.Logger
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(federation FederationLoginService, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		federation: federation,
		logger:     logger.Named("login_handler"),
	}
}

// Login handles GET /login?code=<providerAuthCode>. On success it sets the
// three session cookies and returns 200. Insufficient provider scopes map to
// 401, every other failure to a plain 500.
func (h *LoginHandler) Login(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		RespondWithMessage(c, http.StatusBadRequest, "Authorization code is required")
		return
	}

	meta := appService.ClientMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.federation.Login(c.Request.Context(), code, meta)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientScope) {
			RespondWithError(c, http.StatusUnauthorized, "More permissions are required", err, h.logger)
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "Internal Server Error", err, h.logger)
		return
	}

	c.SetCookie(CookieChatToken, result.ChatSession.AuthToken, 0, "/", "", false, false)
	c.SetCookie(CookieChatUserID, result.ChatSession.UserID, 0, "/", "", false, false)
	c.SetCookie(CookieIdentityToken, result.IdentityToken, 0, "/", "", false, false)

	RespondWithMessage(c, http.StatusOK, "Success")
}
