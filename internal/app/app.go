package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/gamewatchr/external/espn"
	"github.com/riskibarqy/gamewatchr/internal/config"
	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/infrastructure/account/anubis"
	repocache "github.com/riskibarqy/gamewatchr/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/gamewatchr/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gamewatchr/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/gamewatchr/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/gamewatchr/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/gamewatchr/internal/platform/cache"
	idgen "github.com/riskibarqy/gamewatchr/internal/platform/id"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/riskibarqy/gamewatchr/internal/platform/resilience"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
)

// App owns the HTTP server and every resource it was built from.
type App struct {
	Server *http.Server

	warmer       *usecase.CatalogWarmer
	warmInterval time.Duration
	closers      []func() error
	logger       *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger, warmInterval: cfg.FeedWarmInterval}

	registry := memory.NewDefaultLeagueRegistry()
	offline := memory.NewOfflineTeamRepository(memory.SeedOfflineTeams())

	feed, refresher, err := a.buildTeamFeed(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	preferences, err := a.buildPreferenceRepository(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	aggregationSvc := usecase.NewTeamAggregationService(registry, feed, offline, cfg.FeedTimeout, logger)
	catalogSvc := usecase.NewCatalogService(registry, aggregationSvc)
	searchSvc := usecase.NewTeamSearchService(registry, aggregationSvc)
	preferenceSvc := usecase.NewPreferenceService(registry, preferences, logger)
	if refresher != nil && cfg.FeedWarmInterval > 0 {
		a.warmer = usecase.NewCatalogWarmer(registry, refresher, cfg.FeedWarmWorkers, cfg.FeedTimeout, logger.Named("warmer"))
	}

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		anubis.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		logger.Named("anubis"),
		anubis.WithPrincipalCacheTTL(cfg.AnubisPrincipalCacheTTL),
	)

	handler := httpapi.NewHandler(catalogSvc, aggregationSvc, searchSvc, preferenceSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins, idgen.NewUUIDGenerator())

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// RunBackground starts the catalog warmer when one is configured.
func (a *App) RunBackground(ctx context.Context) {
	if a.warmer == nil {
		a.logger.Info("catalog warmer disabled")
		return
	}
	go a.warmer.Run(ctx, a.warmInterval)
}

// Close releases stores and caches in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildTeamFeed(ctx context.Context, cfg config.Config) (team.Feed, usecase.TeamFeedRefresher, error) {
	client := espn.NewClient(espn.ClientConfig{
		BaseURL:      cfg.FeedBaseURL,
		UserAgent:    cfg.FeedUserAgent,
		Timeout:      cfg.FeedTimeout,
		MaxBodyBytes: cfg.FeedMaxBodyBytes,
		Logger:       a.logger.Named("espn"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
	if !cfg.FeedCacheEnabled {
		a.logger.Info("team feed cache disabled")
		return client, nil, nil
	}

	if cfg.RedisAddr == "" {
		cached := repocache.NewTeamFeed(client, basecache.NewStore[[]team.Team](cfg.FeedCacheTTL))
		a.logger.Info("team feed cache enabled", "backend", "memory", "ttl", cfg.FeedCacheTTL.String())
		return cached, cached, nil
	}

	redisClient, err := basecache.NewRedisClient(ctx, basecache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, redisClient.Close)

	store := basecache.NewRedisStore(redisClient, cfg.ServiceName+":", cfg.FeedCacheTTL)
	cached := repocache.NewRedisTeamFeed(client, store, a.logger.Named("feed_cache"))
	a.logger.Info("team feed cache enabled", "backend", "redis", "addr", cfg.RedisAddr, "ttl", cfg.FeedCacheTTL.String())
	return cached, cached, nil
}

func (a *App) buildPreferenceRepository(ctx context.Context, cfg config.Config) (preference.Repository, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		if err := postgres.NewAccountRepository(db).EnsureAccounts(ctx, cfg.SeedUserIDs...); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		a.logger.Info("preference store ready", "driver", config.StorePostgres, "db", cfg.PostgresDBName())
		return postgres.NewPreferenceRepository(db), nil
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite path=%s: %w", cfg.SQLitePath, err)
		}
		a.closers = append(a.closers, db.Close)

		repo := sqlite.NewPreferenceRepository(db)
		if err := repo.EnsureAccounts(ctx, cfg.SeedUserIDs...); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		a.logger.Info("preference store ready", "driver", config.StoreSQLite, "path", cfg.SQLitePath)
		return repo, nil
	default:
		a.logger.Info("preference store ready", "driver", config.StoreMemory, "accounts", len(cfg.SeedUserIDs))
		return memory.NewPreferenceRepository(cfg.SeedUserIDs...), nil
	}
}
