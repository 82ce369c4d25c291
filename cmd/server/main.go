package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecohub/internal/auth"
	"ecohub/internal/config"
	"ecohub/internal/db"
	"ecohub/internal/logger"
	"ecohub/internal/metrics"
	"ecohub/internal/router"
	"ecohub/internal/services"
	"ecohub/internal/storage"
	"ecohub/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Init(&cfg.Log)
	defer logger.Sync()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	database, err := db.Open(&cfg.Database, logger.NewGormLogger(cfg.Database.SlowThreshold, cfg.Log.Level == "debug"))
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	deps := services.Deps{
		DB:        database,
		MaxUpload: cfg.Storage.MaxUpload,
	}

	// 对象存储可选，不可用时图片接口返回 500
	if store, err := storage.NewMinio(ctx, &cfg.Storage); err != nil {
		logger.Warn("Object storage unavailable, picture uploads disabled", zap.Error(err))
	} else if store != nil {
		deps.Storage = store
	}

	// 未配置 Redis 时使用进程内黑名单
	if denylist, err := auth.NewRedisDenylist(ctx, &cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, using in-memory token denylist", zap.Error(err))
	} else if denylist != nil {
		deps.Denylist = denylist
		defer denylist.Close()
	}
	cancel()

	deps.Tokens, err = auth.NewTokenManager(&cfg.JWT)
	if err != nil {
		logger.Fatal("Invalid JWT configuration", zap.Error(err))
	}
	if cfg.IsProd() && cfg.JWT.Secret == "secret_key_change_me" {
		logger.Warn("JWT_SECRET is using the default value")
	}

	deps.Cache, err = utils.NewCache(1024, 5*time.Minute)
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	deps.Cache.OnHit = func() { metrics.RecordCacheHit("ratings") }
	deps.Cache.OnMiss = func() { metrics.RecordCacheMiss("ratings") }

	svc := services.New(deps)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.SeedAdmin(seedCtx, &cfg.Admin); err != nil {
		logger.Error("Failed to seed admin user", zap.Error(err))
	}
	seedCancel()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router.New(svc, cfg.App.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("EcoHub server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
