package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhle/fnb-optimizer/internal/api"
	"github.com/minhle/fnb-optimizer/internal/cache"
	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/repository"
	"github.com/minhle/fnb-optimizer/internal/repository/csvrepo"
	"github.com/minhle/fnb-optimizer/internal/repository/postgres"
	"github.com/minhle/fnb-optimizer/internal/service"
	"github.com/minhle/fnb-optimizer/internal/storage"
	"github.com/minhle/fnb-optimizer/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	source, cleanup, err := buildDataSource(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize data source")
	}
	defer cleanup()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without caching")
		reportCache = cache.NewNoopReportCache()
	}

	optimizerService := service.NewOptimizerService(source, reportCache, cfg.Forecast, cfg.Planner)

	if cfg.Snapshot.Enabled {
		client, err := storage.NewMinioClient(cfg.Snapshot)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Snapshot storage unavailable, reports will not be archived")
		} else {
			optimizerService.WithSnapshots(storage.NewSnapshotStore(client))
		}
	}

	router := api.NewRouter(optimizerService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildDataSource(cfg *config.Config) (repository.DataSource, func(), error) {
	switch cfg.Data.Source {
	case "postgres":
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDataSource(db), func() { db.Close() }, nil
	default:
		return csvrepo.NewDataSource(cfg.Data.Dir), func() {}, nil
	}
}
