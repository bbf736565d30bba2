package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finetune-gateway/internal/config"
	"finetune-gateway/internal/domain"
	"finetune-gateway/internal/handler"
	"finetune-gateway/internal/identity"
	"finetune-gateway/internal/metrics"
	"finetune-gateway/internal/middleware"
	"finetune-gateway/internal/poller"
	"finetune-gateway/internal/provider"
	"finetune-gateway/internal/repository"
	"finetune-gateway/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Outbound clients
	providerClient := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout, m)
	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.AnonKey, cfg.Identity.Timeout)

	// Repositories
	modelRepo := repository.NewManagedModelRepository(pool)
	usageLogRepo := repository.NewUsageLogRepository(pool)
	jobRepo := repository.NewTrainingJobRepository(pool)

	// Status poller
	nonTerminal := make([]domain.JobStatus, 0, len(cfg.Poller.NonTerminalStatuses))
	for _, s := range cfg.Poller.NonTerminalStatuses {
		nonTerminal = append(nonTerminal, domain.JobStatus(s))
	}
	jobPoller := poller.New(jobRepo, providerClient, cfg.Poller.Interval, nonTerminal, m)

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(modelRepo, usageLogRepo, m)
	chatUC := usecase.NewChatUseCase(modelRepo, ledgerUC, providerClient, cfg.Provider.APIKey)
	datasetUC := usecase.NewDatasetUseCase(providerClient)
	finetuneUC := usecase.NewFinetuneUseCase(jobRepo, providerClient, jobPoller.Kick)
	modelUC := usecase.NewManagedModelUseCase(modelRepo, providerClient)

	h := handler.New(chatUC, datasetUC, finetuneUC, modelUC, ledgerUC)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Metrics(m), gin.Recovery())

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(identityClient))
	h.RegisterRoutes(api)

	// Health check with DB and provider ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		if err := providerClient.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Background job status refresh
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	if cfg.Poller.Enabled {
		go jobPoller.Run(pollerCtx)
		log.WithField("interval", cfg.Poller.Interval.String()).Info("job status poller started")
	} else {
		log.Info("job status poller disabled")
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
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
