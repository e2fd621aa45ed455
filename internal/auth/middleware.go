package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Revocations answers whether a token has been revoked by logout.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const claimsKey = "claims"

// RequireAuth enforces bearer JWT tokens signed with HS256 and rejects
// tokens revoked through logout.
func RequireAuth(signingKey, issuer string, revoked Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}
		if revoked != nil {
			if gone, err := revoked.IsRevoked(c.Request.Context(), tokenStr); err == nil && gone {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "session expired"})
				return
			}
		}
		c.Set(claimsKey, claims)
		c.Set("token", tokenStr)
		c.Next()
	}
}

// RequireRole allows only callers whose token carries the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth, zero-valued when absent.
func ClaimsFrom(c *gin.Context) Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(Claims)
	return claims
}

// TokenFrom returns the raw bearer token stored by RequireAuth.
func TokenFrom(c *gin.Context) string {
	v, _ := c.Get("token")
	s, _ := v.(string)
	return s
}
