package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader       = "X-Session-ID"
	ContextSessionIDKey = "session_id"
)

// SessionID resolves the caller's session from the X-Session-ID header,
// generating a fresh id when the header is absent. A generated id scopes only
// the current request; clients that want continuity must send the header.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(ContextSessionIDKey, sessionID)
		c.Next()
	}
}
