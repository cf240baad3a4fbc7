package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

// Verifier checks bearer credentials.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// BearerToken extracts the credential from an "Authorization: Bearer" header.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth aborts the request through onError unless it carries a valid
// bearer credential; the claims are then available via ClaimsFrom.
func RequireAuth(v Verifier, onError func(*gin.Context, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.Verify(BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			onError(c, err)
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
