package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/shared/telemetry"
)

type originTier int

const (
	tierUnrestricted originTier = iota
	tierStrict
	tierLenient
)

// Paths that ALWAYS require a present, matching Origin header.
var strictOriginPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
}

// Paths that validate the Origin header only when one is supplied.
var lenientOriginPaths = []string{
	"/api/user",
	"/api/auth/logout",
	"/api/demo",
}

// OriginPolicy carries the origin accepted on guarded paths. It is built once
// from startup config and never mutated afterwards.
type OriginPolicy struct {
	AllowedOrigin string
}

// OriginGate rejects cross-origin requests to guarded paths before any handler
// or auth check runs. The comparison against the allowed origin is exact; no
// scheme or host normalization is applied.
func OriginGate(policy *OriginPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		path := c.Request.URL.Path

		switch classifyOriginPath(path) {
		case tierStrict:
			if origin == "" {
				telemetry.Warn("origin.rejected", map[string]any{
					"path":   path,
					"reason": "no Origin header present",
				})
				rejectOrigin(c, "Origin header is required")
				return
			}
			if origin != policy.AllowedOrigin {
				telemetry.Warn("origin.rejected", map[string]any{
					"path":           path,
					"origin":         origin,
					"allowed_origin": policy.AllowedOrigin,
				})
				rejectOrigin(c, "Origin not allowed")
				return
			}
		case tierLenient:
			if origin != "" && origin != policy.AllowedOrigin {
				telemetry.Warn("origin.rejected", map[string]any{
					"path":           path,
					"origin":         origin,
					"allowed_origin": policy.AllowedOrigin,
				})
				rejectOrigin(c, "Origin not allowed")
				return
			}
		}

		c.Next()
	}
}

// classifyOriginPath matches request paths by prefix. Strict prefixes are
// scanned before lenient ones, so a path listed in both tiers is strict.
func classifyOriginPath(path string) originTier {
	for _, prefix := range strictOriginPaths {
		if strings.HasPrefix(path, prefix) {
			return tierStrict
		}
	}
	for _, prefix := range lenientOriginPaths {
		if strings.HasPrefix(path, prefix) {
			return tierLenient
		}
	}
	return tierUnrestricted
}

func rejectOrigin(c *gin.Context, body string) {
	c.String(http.StatusForbidden, body)
	c.Abort()
}
