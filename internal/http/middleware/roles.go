package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/session"
)

// RequireRoles gates a route group to the given roles. It mirrors the
// client-side route guard: an unauthenticated request is sent to the
// login view, a wrong-role request to its own dashboard, and the
// response carries the redirect target so the front end can navigate.
// An empty role list admits any authenticated user.
func RequireRoles(required ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": session.PathLogin,
				"from":     c.Request.URL.Path,
			})
			c.Abort()
			return
		}
		role := roleVal.(domain.Role)

		if len(required) == 0 {
			c.Next()
			return
		}

		for _, want := range required {
			if role == want && role.Known() {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":    "Access Denied",
			"redirect": session.RoleHome(role),
		})
		c.Abort()
	}
}
