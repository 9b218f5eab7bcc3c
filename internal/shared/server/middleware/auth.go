package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"profile-backend/internal/shared/server/respond"
)

const (
	principalKey = "principal"
	userIDKey    = "userId"
)

// Principal is the authenticated identity stored in the request context.
type Principal struct {
	UserID string
	Email  string
}

// AuthClaims is the JWT payload accepted by the auth middleware.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Auth validates bearer JWTs and stores the identity in context.
// Token issuance happens elsewhere; this middleware only verifies.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(principalKey, Principal{UserID: claims.Subject, Email: claims.Email})
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// PrincipalFromContext fetches the identity set by the auth middleware.
// The second return is false when the request carried no valid token.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	if c == nil {
		return Principal{}, false
	}
	val, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := val.(Principal)
	return p, ok
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	p, ok := PrincipalFromContext(c)
	if !ok {
		return ""
	}
	return p.UserID
}

// RequireAuth aborts with 403 when no authenticated principal is present.
// It runs after Auth on routes that must not fall through unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c); !ok {
			respond.Error(c, http.StatusForbidden, "forbidden", "authentication required", nil)
			return
		}
		c.Next()
	}
}
