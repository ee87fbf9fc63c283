package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anilkoundinya7/E-Commerce/services"
)

// IdentityKey is the gin context key holding the authenticated Identity.
const IdentityKey = "identity"

// Protect verifies the bearer token and binds a typed Identity into the
// request context for the duration of one request.
func Protect(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		identity, err := tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// AdminOnly rejects callers whose identity lacks the admin flag. Must run
// after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: Admins only"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the Identity bound by Protect.
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := val.(services.Identity)
	return identity, ok
}
