package httpserver

import (
	"net/http"
	"strings"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "shopSession"

// sessionMiddleware resolves the bearer token to a live session and aborts
// unauthenticated requests. Identity and role are settled here; handlers
// downstream just read the session.
func sessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in"})
			return
		}
		sess, ok := store.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || sess.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// Browser clients fall back to a cookie.
	if cookie, err := c.Cookie("session_token"); err == nil {
		return cookie
	}
	return ""
}
