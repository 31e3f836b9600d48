package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fileshare/internal/config"
	"fileshare/internal/database"
	"fileshare/internal/middleware"
	"fileshare/internal/modules/access"
	"fileshare/internal/modules/activity"
	"fileshare/internal/modules/auth"
	"fileshare/internal/modules/files"
	jwtsvc "fileshare/internal/pkg/jwt"
	"fileshare/internal/pkg/logger"
	"fileshare/internal/repository"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("APP_ENV") == "production"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	grantRepo := repository.NewGrantRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	if err := authService.BootstrapAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.L().Fatal("admin bootstrap failed", zap.Error(err))
	}

	hub := activity.NewHub()
	defer hub.Close()

	accessService := access.NewService(userRepo, fileRepo, grantRepo)
	filesService := files.NewService(fileRepo, accessService, hub, cfg.UploadDir, cfg.MaxUploadSize)

	authHandler := auth.NewHandler(authService)
	accessHandler := access.NewHandler(accessService)
	filesHandler := files.NewHandler(filesService)
	activityHandler := activity.NewHandler(hub, j, userRepo)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	root := r.Group("")

	// public
	authHandler.RegisterPublicRoutes(root)
	activityHandler.RegisterRoutes(root) // authenticates via query token

	// any authenticated user
	user := r.Group("/user")
	user.Use(middleware.JWTAuth(j, userRepo))
	{
		accessHandler.RegisterUserRoutes(user)
		filesHandler.RegisterUserRoutes(user)
	}

	// admin only
	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuth(j, userRepo), middleware.AdminOnly())
	{
		authHandler.RegisterAdminRoutes(admin)
		filesHandler.RegisterAdminRoutes(admin)
		accessHandler.RegisterAdminRoutes(admin)
	}

	logger.L().Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
