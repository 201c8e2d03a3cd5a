package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

const (
	// CallerKey is the gin context key holding the model.Caller snapshot.
	CallerKey = "caller"
	// UserKey is the gin context key holding the full user document.
	UserKey = "user"
)

// AuthMiddleware verifies the Authorization bearer token and resolves the
// caller's identity (user, organization, role) for downstream handlers.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.NewCodedErrorResponse("UNAUTHORIZED", "Missing bearer token", ""))
			return
		}

		user, err := auth.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.NewCodedErrorResponse("UNAUTHORIZED", "Invalid or expired token", ""))
			return
		}

		c.Set(UserKey, user)
		c.Set(CallerKey, model.CallerOf(user))
		c.Next()
	}
}

// CallerFrom returns the caller snapshot set by AuthMiddleware.
func CallerFrom(c *gin.Context) model.Caller {
	if v, ok := c.Get(CallerKey); ok {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}

// UserFrom returns the authenticated user set by AuthMiddleware.
func UserFrom(c *gin.Context) *model.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
