package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"prize-draw-backend/internal/common/config"
	"prize-draw-backend/internal/common/logger"
	"prize-draw-backend/internal/common/middleware"
	confighttp "prize-draw-backend/internal/features/configuration/delivery/http"
	configrepo "prize-draw-backend/internal/features/configuration/repository"
	configmem "prize-draw-backend/internal/features/configuration/repository/memory"
	configredis "prize-draw-backend/internal/features/configuration/repository/redis"
	configservice "prize-draw-backend/internal/features/configuration/service"
	drawhttp "prize-draw-backend/internal/features/draw/delivery/http"
	drawrepo "prize-draw-backend/internal/features/draw/repository"
	drawmem "prize-draw-backend/internal/features/draw/repository/memory"
	drawredis "prize-draw-backend/internal/features/draw/repository/redis"
	drawservice "prize-draw-backend/internal/features/draw/service"
	redisplatform "prize-draw-backend/internal/platform/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger.Init("prize-draw-backend", cfg.Debug)

	var (
		snapshotStore drawrepo.SnapshotStore
		configStore   configrepo.ConfigurationRepository
		rdb           *redisplatform.Client
	)

	if cfg.Redis.Disabled {
		logger.Warn().Msg("Redis disabled, running on in-memory storage")
		snapshotStore = drawmem.NewSnapshotStore()
		configStore = configmem.NewConfigurationRepository()
	} else {
		var err error
		rdb, err = redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		logger.Info().Str("host", cfg.Redis.Host).Msg("Redis connection established")

		snapshotStore = drawredis.NewSnapshotStore(rdb)
		configStore = configredis.NewConfigurationRepository(rdb)
	}

	debounced := drawrepo.NewDebouncedStore(snapshotStore, cfg.Draw.SaveDebounce)
	defer debounced.Flush()

	drawSvc := drawservice.NewDrawService(debounced)
	if err := drawSvc.RestoreSession(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to restore draw session, starting fresh")
	}
	configSvc := configservice.NewConfigurationService(configStore)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	drawhttp.NewDrawHandler(drawSvc, cfg.Draw.DefaultRoundCount).RegisterRoutes(v1)
	confighttp.NewConfigurationHandler(configSvc).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "prize-draw-backend",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if rdb != nil {
			readyCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(readyCtx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
