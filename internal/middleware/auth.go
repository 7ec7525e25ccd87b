package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"admin-service/internal/authz"
	"admin-service/internal/identity"
)

// AdminAuth validates the bearer ID token against the identity directory
// and rejects callers that are not on the admin allow-list. It runs
// before any handler and performs no mutation.
func AdminAuth(directory identity.Directory, policy authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "UNAUTHENTICATED", "error": "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "UNAUTHENTICATED", "error": "invalid authorization header"})
			return
		}

		token, err := directory.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "UNAUTHENTICATED", "error": "invalid token"})
			return
		}

		if !policy.Allow(token.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"kind": "PERMISSION_DENIED", "error": "admin access required"})
			return
		}

		c.Set("adminUID", token.UID)
		c.Set("adminEmail", token.Email)
		c.Next()
	}
}
