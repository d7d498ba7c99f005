package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/infrastructure/session"
)

// ContextSession is the gin context key holding the resolved session
const ContextSession = "storefront_session"

// SessionConfig configures the session cookie middleware
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

// Session resolves the visitor's session from the session cookie, creating a
// fresh session (and setting the cookie) when the cookie is absent or names
// an expired session. Handlers read the result with GetSession.
func Session(manager *session.Manager, cfg SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())

	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)

		var sess *session.Session
		if err == nil {
			sess, _ = manager.Get(id)
		}
		if sess == nil {
			sess = manager.Create()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sess.ID, maxAge, "/", "", cfg.CookieSecure, true)
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

// GetSession returns the session resolved by the Session middleware
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
