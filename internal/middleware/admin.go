package middleware

import (
	"net/http" // HTTP status codes

	"ecorewards/internal/domain"
	"ecorewards/internal/store"

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware re-checks the user's stored role on each request, so a
// stale token from a demoted admin stops working immediately.
func AdminOnlyMiddleware(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := st.Users().ByID(c.Request.Context(), userID)
		if err != nil || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
