package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/demo"
	"profile-backend/internal/profileimage"
	"profile-backend/internal/shared/config"
	"profile-backend/internal/shared/server"
	"profile-backend/internal/shared/storage/db"
	"profile-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo users.Repo
	ImageRepo profileimage.Repo

	UsersService *users.Service
	ImageService *profileimage.Service

	UsersHandler *users.Handler
	ImageHandler *profileimage.Handler
	DemoHandler  *demo.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.ImageRepo, err = buildImageRepo(ctx, cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ImageService = profileimage.NewService(app.ImageRepo)

	app.UsersHandler = users.NewHandler(app.UsersService, app.ImageService)
	app.ImageHandler = profileimage.NewHandler(app.ImageService, cfg.MaxImageBytes)
	app.DemoHandler = demo.NewHandler()

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		UsersHandler: app.UsersHandler,
		ImageHandler: app.ImageHandler,
		DemoHandler:  app.DemoHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable, using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildImageRepo(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (profileimage.Repo, error) {
	switch cfg.ImageStoreType {
	case "local":
		return profileimage.NewLocalStore(cfg.LocalStoreDir), nil
	case "s3":
		return profileimage.NewS3Store(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		if sqlDB != nil {
			return &profileimage.PGRepo{DB: sqlDB}, nil
		}
		return profileimage.NewMemoryRepo(), nil
	}
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "staging":
		return true
	default:
		return false
	}
}
