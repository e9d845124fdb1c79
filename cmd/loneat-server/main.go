package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/config"
	"github.com/hoon0510/loneatkr/internal/database"
	httpapi "github.com/hoon0510/loneatkr/internal/http"
	"github.com/hoon0510/loneatkr/internal/logger"
	"github.com/hoon0510/loneatkr/internal/repository"
	"github.com/hoon0510/loneatkr/internal/service"
	"github.com/hoon0510/loneatkr/internal/upload"
)

func main() {
	// .env가 있으면 자동 로드
	_ = godotenv.Load()

	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, "loneat-server")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	restaurantsRepo := repository.NewPostgresRestaurantsRepository(db)
	adminsRepo := repository.NewPostgresAdminsRepository(db)

	authService := service.NewAuthService(adminsRepo, []byte(cfg.JWTSecret), zapLogger)
	gate := httpapi.NewAuthGate(authService, cfg.CookieSecure(), zapLogger)
	uploadStore := upload.NewStore(cfg.UploadDir)

	router := httpapi.NewRouter(zapLogger)
	router.RegisterPublicRoutes(httpapi.NewRestaurantHandler(restaurantsRepo, zapLogger))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, gate, zapLogger))
	router.RegisterAdminRoutes(
		httpapi.NewAdminRestaurantHandler(restaurantsRepo, zapLogger),
		httpapi.NewUploadHandler(uploadStore, zapLogger),
		gate,
	)
	router.RegisterSiteRoutes(httpapi.NewSiteHandler(restaurantsRepo, cfg.SiteURL, zapLogger), cfg.UploadDir)
	router.RegisterAdminPages(gate, cfg.WebDir)

	srv := service.NewServer(cfg.HTTP.Addr, router, zapLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLogger.Info("received signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLogger.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}
