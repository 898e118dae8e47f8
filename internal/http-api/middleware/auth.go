package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireLogin.
const (
	ActorKey        = "actor"
	SessionTokenKey = "sessionToken"
)

// RequireLogin resolves the session cookie to an active account. The role is
// read from the account on every request, so a demotion applies at once.
func RequireLogin(authService service.AuthService, cookies *SessionCookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		actor, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			cookies.Clear(c)
			if errors.Is(err, service.ErrUnauthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": service.PublicMessage(err)})
			} else {
				slog.ErrorContext(c.Request.Context(), "session lookup failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set(ActorKey, actor)
		c.Set(SessionTokenKey, token)
		c.Set("userID", actor.UserID)
		c.Set("username", actor.Username)
		c.Set("role", actor.Role)

		c.Next()
	}
}

// RequireRole rejects actors whose role is not listed. Must run after RequireLogin.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		if !slices.Contains(roles, actor.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor returns the actor stored by RequireLogin.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}
