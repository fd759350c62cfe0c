package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/cache"
	"github.com/BruksfildServices01/studio-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/studio-booking/internal/db"
	"github.com/BruksfildServices01/studio-booking/internal/logging"
	"github.com/BruksfildServices01/studio-booking/internal/routes"
	"github.com/BruksfildServices01/studio-booking/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCache := buildCache(ctx, cfg, logger)

	var images storage.ImageStore
	if cfg.UploadsEnabled() {
		images = storage.NewS3Store(cfg)
		logger.Info("image uploads enabled", "bucket", cfg.S3Bucket)
	}

	dispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Logger: logger,
		Cache:  appCache,
		Images: images,
		Audit:  dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	dispatcher.Close()
	if closer, ok := appCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// buildCache prefers redis and falls back to an in-process cache when it is
// not configured or unreachable.
func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}

	rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
		return cache.NewMemory()
	}
	logger.Info("redis cache connected", "addr", cfg.RedisAddr)
	return rc
}
