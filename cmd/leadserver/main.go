// Package main wires together the lead generation service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/api"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/clock/system"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/config"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/enrich"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/id/uuid"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/logging"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/metrics"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/pipeline"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress/sinks"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/publisher"
	pubsubpublisher "github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/publisher/pubsub"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/search"
	memorystorage "github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/storage/memory"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/storage/postgres"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	idGen := uuid.New()
	clock := system.New()

	var store lead.Store
	if cfg.DB.DSN != "" {
		pgStore, err := postgres.NewLeadStore(ctx, postgres.LeadStoreConfig{
			DSN:             cfg.DB.DSN,
			MaxConns:        int32(cfg.DB.MaxConns),
			MinConns:        int32(cfg.DB.MinConns),
			MaxConnLifetime: time.Duration(cfg.DB.ConnLifetimeMin) * time.Minute,
		}, idGen, clock)
		if err != nil {
			logger.Fatal("postgres store init failed", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logger.Warn("db.dsn not set, using in-memory lead store")
		store = memorystorage.NewLeadStore(idGen, clock)
	}

	var fetcher enrich.PageFetcher
	if cfg.Enrich.Headless {
		headless := enrich.NewHeadless(enrich.HeadlessConfig{
			UserAgent:         cfg.Enrich.UserAgent,
			NavigationTimeout: time.Duration(cfg.Enrich.NavTimeoutSec) * time.Second,
			DomainQPS:         cfg.Enrich.DomainQPS,
		}, logger.Named("headless"))
		defer headless.Close()
		fetcher = headless
	} else {
		fetcher = enrich.NewColly(enrich.CollyConfig{
			UserAgent: cfg.Enrich.UserAgent,
			Timeout:   time.Duration(cfg.Enrich.NavTimeoutSec) * time.Second,
		})
	}

	extractor := enrich.NewExtractor(fetcher, logger.Named("extractor"))
	pool := enrich.NewPool(extractor, cfg.Enrich.Concurrency, logger.Named("enrich"))

	provider := search.NewClient(search.ClientConfig{
		APIKey:  cfg.Search.APIKey,
		BaseURL: cfg.Search.BaseURL,
		Timeout: cfg.SearchTimeout(),
		Logger:  logger.Named("search"),
	})

	hub := progress.NewHub(
		progress.HubConfig{Logger: logger.Named("hub")},
		sinks.NewLog(logger.Named("runs")),
		sinks.NewPrometheus(),
	)

	runner := pipeline.NewRunner(provider, store, pool, hub, pipeline.Config{
		PageSize:   cfg.Search.PageSize,
		MaxPages:   cfg.Search.MaxPages,
		EmitPacing: cfg.EmitPacing(),
	}, logger.Named("pipeline"))

	var pub publisher.Publisher
	if cfg.PubSub.ProjectID != "" {
		p, err := pubsubpublisher.New(ctx, pubsubpublisher.Config{
			ProjectID: cfg.PubSub.ProjectID,
			Logger:    logger.Named("pubsub"),
		})
		if err != nil {
			logger.Fatal("pubsub publisher init failed", zap.Error(err))
		}
		defer func() {
			if closeErr := p.Close(); closeErr != nil {
				logger.Error("pubsub close failed", zap.Error(closeErr))
			}
		}()
		pub = p
	}

	apiServer := api.NewServer(store, runner, pub, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if err := hub.Close(shutdownCtx); err != nil {
		logger.Error("hub shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
