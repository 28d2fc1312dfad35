package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionCtxKey = "session_id"
)

// SessionMiddleware resolves the conversation key from the X-Session-ID
// header or the session cookie, minting a new one when neither is present.
// The key is echoed back in both places.
func SessionMiddleware(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(SessionHeader))
		if key == "" {
			if v, err := c.Cookie(cookieName); err == nil {
				key = strings.TrimSpace(v)
			}
		}
		if key == "" {
			key = uuid.NewString()
		}

		c.Set(sessionCtxKey, key)
		c.Writer.Header().Set(SessionHeader, key)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, key, 0, "/", "", false, true)
		c.Next()
	}
}

// SessionKey returns the key set by SessionMiddleware.
func SessionKey(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
