// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// IdentityReader resolves the signed-in user of a session
type IdentityReader interface {
	Current(ctx context.Context, sessionID string) (*identity.Identity, error)
}

// RequireIdentity lets the request through only when the session is signed
// in. Browsers are redirected to the login page with a return path; API
// clients get a 401 carrying the same login URL.
func RequireIdentity(identities IdentityReader, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := identities.Current(c.Request.Context(), GetSessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load session",
			})
			c.Abort()
			return
		}

		if !id.Authenticated {
			loginURL := cfg.Auth.LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())

			if acceptsHTML(c.Request) {
				c.Redirect(http.StatusFound, loginURL)
				c.Abort()
				return
			}

			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Authentication required",
				"login_url": loginURL,
			})
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// GetIdentityFromContext returns the identity stored by RequireIdentity
func GetIdentityFromContext(c *gin.Context) (*identity.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := value.(*identity.Identity)
	return id, ok
}

// GetTokenFromContext returns the access token of the signed-in user
func GetTokenFromContext(c *gin.Context) string {
	id, ok := GetIdentityFromContext(c)
	if !ok {
		return ""
	}
	return id.Token
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
