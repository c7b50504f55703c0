package middleware

import (
	"net/http"
	"strings"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// RequireAuth resolves the requesting staff user from a Bearer session token
// and stores it in the request context.
func RequireAuth(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "missing or malformed Authorization header")
			c.Abort()
			return
		}

		user, err := userSvc.FindByToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c).Role != models.RoleAdministrator {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth. It returns
// an empty user when called outside an authenticated route.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok2 := v.(*models.User); ok2 {
			return u
		}
	}
	return &models.User{}
}
