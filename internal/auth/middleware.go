package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware gates admin-only endpoints. The session token is read
// from the httpOnly cookie set at login; a Bearer header is accepted as a
// fallback for CLI tooling.
func SessionMiddleware(cookieName, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			tokenString = bearerToken(c)
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := ValidateSessionToken(tokenString, jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			}
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)

		c.Next()
	}
}

// SetSessionCookie writes the httpOnly session cookie on login.
func SetSessionCookie(c *gin.Context, cookieName, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, token, int(SessionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(c *gin.Context, cookieName string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", secure, true)
}

func GetAdminID(c *gin.Context) (int, bool) {
	adminID, exists := c.Get("admin_id")
	if !exists {
		return 0, false
	}

	id, ok := adminID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
