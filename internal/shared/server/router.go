package server

import (
	"github.com/gin-gonic/gin"

	"profile-backend/internal/demo"
	"profile-backend/internal/profileimage"
	"profile-backend/internal/shared/config"
	"profile-backend/internal/shared/server/middleware"
	"profile-backend/internal/shared/server/respond"
	"profile-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config       config.Config
	UsersHandler *users.Handler
	ImageHandler *profileimage.Handler
	DemoHandler  *demo.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// The origin gate runs before auth: rejected cross-origin requests never
// reach token verification or any handler.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.OriginGate(&middleware.OriginPolicy{AllowedOrigin: deps.Config.AllowedOrigin}),
		middleware.Auth(deps.Config.JWTSecret),
	)
	r.MaxMultipartMemory = deps.Config.MaxImageBytes

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	deps.DemoHandler.RegisterRoutes(api)

	authed := api.Group("", middleware.RequireAuth())
	deps.UsersHandler.RegisterRoutes(authed)

	uploadLimit := middleware.RateLimit(middleware.RateLimitRule{Rate: 0.5, Burst: 5}, nil)
	deps.ImageHandler.RegisterRoutes(authed, uploadLimit)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
