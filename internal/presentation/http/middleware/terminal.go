package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// TerminalIDHeader identifies the tablet making the request. Several
	// tablets can share one terminal service.
	TerminalIDHeader = "X-Terminal-ID"
	// TerminalIDKey is the gin context key the terminal ID is stored under.
	TerminalIDKey = "terminal_id"
)

// Terminal resolves the calling terminal's identity. Clients that do not
// send the header fall back to their IP, so rate limiting and idempotency
// still key on something stable.
func Terminal() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetHeader(TerminalIDHeader)
		if terminalID == "" {
			terminalID = c.ClientIP()
		}
		c.Set(TerminalIDKey, terminalID)
		c.Next()
	}
}

// GetTerminalID extracts the terminal ID from the Gin context.
func GetTerminalID(c *gin.Context) string {
	id, exists := c.Get(TerminalIDKey)
	if !exists {
		return ""
	}
	terminalID, ok := id.(string)
	if !ok {
		return ""
	}
	return terminalID
}
