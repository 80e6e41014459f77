package app

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/user/rera-scraper/internal/adapter/chromedp_fetcher"
	"github.com/user/rera-scraper/internal/adapter/postgres"
	redis_adapter "github.com/user/rera-scraper/internal/adapter/redis"
	"github.com/user/rera-scraper/internal/adapter/resty_fetcher"
	"github.com/user/rera-scraper/internal/adapter/tabular"
	"github.com/user/rera-scraper/internal/delivery/http/handler"
	"github.com/user/rera-scraper/internal/extractor"
	"github.com/user/rera-scraper/internal/repository"
	"github.com/user/rera-scraper/internal/usecase"
	"github.com/user/rera-scraper/pkg/config"
	"github.com/user/rera-scraper/pkg/metrics"
	"github.com/user/rera-scraper/pkg/proxy"
	"go.uber.org/zap"
)

// App is the assembled scraper with its optional backing stores.
type App struct {
	Pipeline *usecase.Pipeline
	Metrics  *metrics.Metrics
	Projects repository.ProjectRepository
	Failures repository.FailureRepository
	Pingers  map[string]handler.Pinger

	closers []func()
}

// New wires every component from cfg. Postgres and Redis are only connected
// when their addresses are configured. console receives the results table.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, console io.Writer, logger *zap.Logger) (*App, error) {
	a := &App{
		Metrics: metrics.New(reg),
		Pingers: map[string]handler.Pinger{},
	}

	agents := proxy.NewManager(cfg.ProxyList(), cfg.UserAgentList())

	var fetcher repository.PageFetcher
	if cfg.RenderJS {
		cf := chromedp_fetcher.NewChromedpFetcher(cfg.RequestTimeout(), agents, logger)
		a.closers = append(a.closers, cf.Close)
		fetcher = cf
		logger.Info("using headless browser fetcher")
	} else {
		fetcher = resty_fetcher.NewRestyFetcher(cfg.RequestTimeout(), agents, logger)
	}

	var opts []usecase.Option

	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			a.Close()
			return nil, fmt.Errorf("unable to prepare schema: %w", err)
		}
		a.Projects = postgres.NewProjectRepo(pool)
		a.Failures = postgres.NewFailureRepo(pool)
		a.Pingers["postgres"] = pool.Ping
		opts = append(opts, usecase.WithProjectRepository(a.Projects), usecase.WithFailureRepository(a.Failures))
		logger.Info("PostgreSQL connection pool established")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.Pingers["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		opts = append(opts, usecase.WithDetailCache(redis_adapter.NewDetailCache(rdb)))
		logger.Info("Redis connection established")
	}

	scraper := usecase.NewScraperUseCase(
		fetcher,
		extractor.NewListingParser(cfg.ListTableSelector, cfg.MaxProjects),
		extractor.NewDetailExtractor(cfg.DetailContainerSelector, cfg.DetailFieldSelector),
		a.Metrics,
		logger,
		usecase.Settings{
			BaseURL:  cfg.BaseURL,
			ListURL:  cfg.ListURL(),
			Delay:    cfg.RequestDelay(),
			CacheTTL: cfg.DetailCacheTTL(),
		},
		opts...,
	)

	a.Pipeline = usecase.NewPipeline(
		scraper,
		tabular.NewCSVWriter(),
		tabular.NewConsoleRenderer(console),
		cfg.OutputPath,
		logger,
	)
	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
