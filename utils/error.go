package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON error body for the admin and health surfaces.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Minimal hand-built document so a panic while rendering TwiML cannot
// recurse through the builder.
const panicTwiML = `<?xml version="1.0" encoding="UTF-8"?>
<Response><Say>We are sorry, something went wrong. Please call back in a moment.</Say><Hangup/></Response>`

// ErrorHandler recovers from handler panics. The voice webhooks answer a
// live phone call, so those paths get a spoken apology the telephony
// provider can play; everything under /api and /health gets JSON.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("panic recovered",
					zap.Any("error", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("call_sid", SanitizeText(c.PostForm("CallSid"))),
				)
				if isVoicePath(c.Request.URL.Path) {
					c.Data(http.StatusOK, "application/xml", []byte(panicTwiML))
				} else {
					c.JSON(http.StatusInternalServerError, ErrorResponse{
						Message: "Internal Server Error",
						Details: "An unexpected error occurred. Please try again later.",
					})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

func isVoicePath(path string) bool {
	return !strings.HasPrefix(path, "/api") && path != "/health"
}

// JSONError logs and sends a structured JSON error response.
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
