// File: internal/handler/http/response.go
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithMessage sends a message-only JSON response.
func RespondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// RespondWithData sends a data-only JSON response.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondWithError logs the failure and sends a message-only error response.
// When the logging middleware stored a request-scoped logger in the context,
// it is used so error entries carry the request id.
func RespondWithError(c *gin.Context, statusCode int, message string, err error, logger *zap.Logger) {
	if value, ok := c.Get("logger"); ok {
		if requestLogger, ok := value.(*zap.Logger); ok {
			logger = requestLogger
		}
	}
	logger.Error("API error response",
		zap.Int("status_code", statusCode),
		zap.String("error_message", message),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(statusCode, gin.H{"message": message})
}
