package middleware

import (
	"net/http"
	"topup-store/models"
	"topup-store/repository"
	"topup-store/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is the http-only cookie carrying the session token.
const SessionCookieName = "token"

const identityContextKey = "currentUser"

// CurrentUser resolves the session cookie to a full identity and stores it
// in the request context. A missing, malformed or expired token all leave
// the context without an identity; callers cannot tell which case they hit.
func CurrentUser(tokens services.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		rawID, ok := claims["user_id"].(string)
		if !ok {
			c.Next()
			return
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityContextKey, user.Identity())
		c.Next()
	}
}

// GetIdentity extracts the resolved identity from the Gin context.
func GetIdentity(c *gin.Context) (*models.Identity, bool) {
	val, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	identity, ok := val.(*models.Identity)
	return identity, ok
}

// RequireAuth rejects requests without a resolved identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized",
			})
			return
		}
		c.Next()
	}
}

// AdminOnly rejects requests whose identity is missing or not an admin.
// The rejection is identical to the unauthenticated one on purpose.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized",
			})
			return
		}
		c.Next()
	}
}
