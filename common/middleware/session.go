package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the shopper session id
	SessionHeader = "X-Session-ID"
	// SessionCookie is the fallback when the header is absent
	SessionCookie = "storefront_session"
	// SessionIDKey is the gin context key holding the resolved id
	SessionIDKey = "session_id"
)

// Session resolves the shopper session from the header, then the cookie, and
// issues a new id when neither is present or the value is malformed. The id
// is echoed in the response header and cookie.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(SessionIDKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Next()
	}
}

// SessionID returns the id resolved by Session
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
