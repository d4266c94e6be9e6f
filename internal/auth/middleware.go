package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campusattend/internal/session"
)

// CookieName carries the opaque session token.
const CookieName = "campusattend_session"

const principalKey = "principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "admin" }

// Resolve looks up the caller from the session cookie or, failing that, a
// bearer JWT. It never aborts; guards below enforce presence and role.
func Resolve(sessions session.Store, signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(CookieName); err == nil && token != "" {
			if s, err := sessions.Get(c.Request.Context(), token); err == nil && s != nil {
				c.Set(principalKey, Principal{UserID: s.UserID, Role: s.Role})
				c.Next()
				return
			}
		}
		authz := c.GetHeader("Authorization")
		if authz != "" && strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			tokenStr := strings.TrimSpace(authz[len("bearer "):])
			if claims, err := Parse(tokenStr, signingKey, issuer); err == nil {
				c.Set(principalKey, Principal{UserID: claims.Subject, Role: claims.Role})
			}
		}
		c.Next()
	}
}

// From returns the request principal, if any.
func From(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// RequireAuth aborts with 401 when no principal is attached.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := From(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 when unauthenticated and 403 for non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := From(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows admins and the user whose id is in the named
// path parameter.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := From(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !p.IsAdmin() && p.UserID != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		}
		c.Next()
	}
}
