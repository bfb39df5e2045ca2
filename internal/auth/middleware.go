package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyOwnerID = "owner_id"
	contextKeyPhone   = "phone"
)

// OwnerIDFromContext returns the authenticated owner ID set by RequireToken.
// 0 if not set.
func OwnerIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyOwnerID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// PhoneFromContext returns the authenticated phone set by RequireToken.
func PhoneFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyPhone)
	if !ok {
		return ""
	}
	phone, _ := v.(string)
	return phone
}

// RequireToken returns a middleware that verifies the bearer token from the
// Authorization header and sets the owner identity in context. Missing or
// invalid tokens get 401. This is the only authorization gate: handlers
// behind it take the owner ID from context, never from the client.
func RequireToken(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(contextKeyOwnerID, claims.OwnerID)
		c.Set(contextKeyPhone, claims.Phone)
		c.Next()
	}
}
