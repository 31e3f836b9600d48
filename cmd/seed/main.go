package main

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fileshare/internal/config"
	"fileshare/internal/database"
	"fileshare/internal/modules/access"
	"fileshare/internal/modules/auth"
	"fileshare/internal/modules/files"
	jwtsvc "fileshare/internal/pkg/jwt"
	"fileshare/internal/pkg/logger"
	"fileshare/internal/repository"
)

// Dev fixture loader: wipes the database and loads an admin, two demo
// users, two files and a grant so the frontend has something to show.
func main() {
	_ = godotenv.Load()

	if err := logger.Init(false); err != nil {
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

	logger.L().Info("cleaning old data")
	db.Exec("DELETE FROM access_grants")
	db.Exec("DELETE FROM files")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	grantRepo := repository.NewGrantRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := auth.NewService(userRepo, j)
	accessService := access.NewService(userRepo, fileRepo, grantRepo)
	filesService := files.NewService(fileRepo, accessService, nil, cfg.UploadDir, cfg.MaxUploadSize)

	if err := authService.BootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.L().Fatal("admin bootstrap failed", zap.Error(err))
	}
	adminUser, err := userRepo.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		logger.L().Fatal("admin lookup failed", zap.Error(err))
	}

	alice, err := authService.Register(ctx, "alice", "alice123")
	if err != nil {
		logger.L().Fatal("seed user failed", zap.Error(err))
	}
	if _, err := authService.Register(ctx, "bob", "bob123"); err != nil {
		logger.L().Fatal("seed user failed", zap.Error(err))
	}

	report, err := filesService.Upload(ctx, adminUser, "report.pdf", strings.NewReader("demo report contents"), 20)
	if err != nil {
		logger.L().Fatal("seed file failed", zap.Error(err))
	}
	if _, err := filesService.Upload(ctx, adminUser, "notes.txt", strings.NewReader("internal notes"), 14); err != nil {
		logger.L().Fatal("seed file failed", zap.Error(err))
	}

	if _, err := accessService.Grant(ctx, alice.ID, report.ID); err != nil {
		logger.L().Fatal("seed grant failed", zap.Error(err))
	}

	logger.L().Info("seed complete",
		zap.String("admin", cfg.AdminUsername),
		zap.String("users", "alice/alice123, bob/bob123"),
	)
}
