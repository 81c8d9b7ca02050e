package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pitchside/external/crestserve"
	"pitchside/external/footstats"
	"pitchside/internal/config"
	"pitchside/internal/domain/fixture"
	"pitchside/internal/infrastructure/repository/memory"
	"pitchside/internal/infrastructure/repository/postgres"
	"pitchside/internal/interfaces/httpapi"
	"pitchside/internal/matching"
	"pitchside/internal/platform/cache"
	"pitchside/internal/platform/logging"
	"pitchside/internal/platform/resilience"
	"pitchside/internal/usecase"
)

// NewHTTPServer wires providers, matching, snapshots and the HTTP layer.
// The returned cleanup releases the snapshot store and must run on shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	statsClient := footstats.NewClient(footstats.ClientConfig{
		BaseURL:    cfg.FootstatsBaseURL,
		APIKey:     cfg.FootstatsAPIKey,
		Timeout:    cfg.FootstatsTimeout,
		MaxRetries: cfg.FootstatsMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootstatsCircuitEnabled,
			FailureThreshold: cfg.FootstatsCircuitFailureCount,
			OpenTimeout:      cfg.FootstatsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootstatsCircuitHalfOpenMaxReq,
		},
	})

	mediaClient := crestserve.NewClient(crestserve.ClientConfig{
		BaseURL: cfg.CrestserveBaseURL,
		APIKey:  cfg.CrestserveAPIKey,
		Timeout: cfg.CrestserveTimeout,
		Logger:  logger,
	})

	snapshots, cleanup, err := newSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	store := cache.NewStore(map[cache.Kind]time.Duration{
		cache.KindPrimaryFixtures: cfg.CacheFixturesTTL,
		cache.KindMediaCandidates: cfg.CacheMediaTTL,
	})

	enrichmentSvc := usecase.NewEnrichmentService(
		statsClient,
		mediaClient,
		matching.NewResolver(),
		snapshots,
		store,
		logger,
	)

	handler := httpapi.NewHandler(enrichmentSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newSnapshotRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (fixture.SnapshotRepository, func(), error) {
	if cfg.DBURL == "" {
		logger.Info("snapshot store using in-memory repository", "reason", "DB_URL empty")
		return memory.NewSnapshotRepository(), func() {}, nil
	}

	db, err := postgres.Connect(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("close snapshot db", "error", closeErr)
		}
	}

	logger.Info("snapshot store using postgres repository")

	return postgres.NewSnapshotRepository(db), cleanup, nil
}
