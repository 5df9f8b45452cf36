package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/core"
	"github.com/teamdesk/teamdesk/pkg/i18n"
	"github.com/teamdesk/teamdesk/pkg/logger"
)

// Success writes the 200 envelope. A nil payload sends the bare
// success flag.
func Success(c *gin.Context, payload any) {
	if payload == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
}

// Error maps a failure to the response envelope. Classified errors
// carry their own status and localized message; everything else is
// logged and degrades to a generic 500 so internals never leak.
func Error(c *gin.Context, err error) {
	code := core.CodeOf(err)
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		c.JSON(code, gin.H{"success": false, "error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		message := i18n.Translate(Language(c), "errors.server.message", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": message})
	}
}

// BindError converts a request binding failure into a 400 response.
func BindError(c *gin.Context, err error) {
	Error(c, core.NewValidationMessage(err.Error()))
}
