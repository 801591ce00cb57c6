// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "session_id"

// Session makes sure every request carries a browser session id, issuing a
// fresh cookie when the client has none or sent something unparseable
func Session(cfg *config.Config) gin.HandlerFunc {
	maxAge := int(cfg.State.TTL.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Security.SessionCookie)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.New().String()

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Security.SessionCookie, sessionID, maxAge, "/", "", cfg.Security.SecureCookies, true)
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
