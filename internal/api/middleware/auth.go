package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/auth"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the session from the cookie (or a bearer
// Authorization header) and puts its claims in the request context.
// No valid session means 401 right here: the backend is never contacted
// on behalf of an unauthenticated caller.
func SessionMiddleware(sessions *auth.Sessions, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := sessionToken(c, cookieName)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, err := sessions.Validate(raw)
		if err != nil {
			logger.Debug("Session validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(sessionContextKey, claims)
		c.Next()
	}
}

// GetSessionFromContext returns the session claims set by SessionMiddleware
func GetSessionFromContext(c *gin.Context) (*auth.SessionClaims, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.SessionClaims)
	return claims, ok
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
