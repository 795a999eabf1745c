package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"disease-diagnosis-service/internal/adapters/primary/http/handlers"
	"disease-diagnosis-service/internal/adapters/primary/http/middleware"
	"disease-diagnosis-service/internal/adapters/secondary/artifacts"
	"disease-diagnosis-service/internal/adapters/secondary/postgres"
	"disease-diagnosis-service/internal/config"
	output "disease-diagnosis-service/internal/core/ports/output"
	"disease-diagnosis-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	instanceID := uuid.New()
	log.WithField("instance_id", instanceID).Info("starting disease diagnosis service")

	// Load report history (Optional - based on config)
	var reportRepo output.LoadReportRepository
	if cfg.Database.Enabled {
		pool, err := openPool(cfg.Database)
		if err != nil {
			log.Warnf("database init failed (continuing without load report history): %v", err)
		} else {
			defer pool.Close()
			reportRepo = postgres.NewLoadReportRepository(pool)
			log.Info("database connection established")
		}
	} else {
		log.Info("load report history disabled")
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	store := artifacts.NewFileStore(cfg.Models.Dir)

	// Core Services (Application Layer)
	loader := services.NewPipelineLoader(store, instanceID)
	diagnosisSvc, err := loader.LoadAll(context.Background(), cfg.Models.Layout())
	if err != nil {
		log.Fatalf("load pipelines: %v", err)
	}

	reports := diagnosisSvc.LoadReports()
	if err := services.LoadErrors(reports); err != nil {
		log.WithError(err).Warn("some artifacts did not load; affected domains are unavailable")
	}
	log.WithField("available", diagnosisSvc.AvailableDomains()).Info("pipelines loaded")

	if reportRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := reportRepo.SaveAll(ctx, reports); err != nil {
			log.Warnf("persist load reports: %v", err)
		}
		cancel()
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(diagnosisSvc, reportRepo)

	// Setup router
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		gin.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	api := router.Group("/api/v1/diagnosis")
	h.RegisterRoutes(api)
	h.RegisterProbes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}

func openPool(dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(dbCfg.MaxOpenConns)
	poolCfg.MinConns = int32(dbCfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = dbCfg.ConnMaxLifetime

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureLoadReportSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
