package commands

import (
	"context"
	"fmt"

	"github.com/ats/lynchboard/internal/analysis"
	"github.com/ats/lynchboard/internal/collector"
	"github.com/ats/lynchboard/internal/delivery"
	"github.com/ats/lynchboard/internal/external/research"
	"github.com/ats/lynchboard/internal/external/yahoo"
	"github.com/ats/lynchboard/internal/report"
	"github.com/ats/lynchboard/pkg/config"
	"github.com/ats/lynchboard/pkg/database"
	"github.com/ats/lynchboard/pkg/httputil"
	"github.com/ats/lynchboard/pkg/logger"
	"github.com/ats/lynchboard/pkg/redis"
)

// runtime bundles the dependencies every command wires the same way.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	runner *analysis.Runner
	repo   *report.Repository // nil when DATABASE_URL is not set
	close  func()
}

// applyGlobalFlags folds the persistent CLI flags into the loaded
// config. --env only wins when the user actually set it.
func applyGlobalFlags(cfg *config.Config) {
	if verbose {
		cfg.LogLevel = "debug"
	}
	if rootCmd.PersistentFlags().Changed("env") {
		cfg.Env = env
	}
}

// initRuntime loads config and wires the full analysis pipeline. The
// database is optional; without it reports are rendered but not kept.
func initRuntime(ctx context.Context) (*runtime, error) {
	// 1. Load config, honoring the global flags
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyGlobalFlags(cfg)

	// 2. Initialize logger
	log := logger.New(cfg)

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 3. Connect to database, when configured
	var repo *report.Repository
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		closers = append(closers, db.Close)

		repo = report.NewRepository(db.Pool)
		if err := repo.Init(ctx); err != nil {
			closeAll()
			return nil, fmt.Errorf("init report storage: %w", err)
		}
		log.Info("Connected to database")
	} else {
		log.Warn("DATABASE_URL not set, report persistence disabled")
	}

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	closers = append(closers, func() { redisClient.Close() })
	cache := redis.NewCache(redisClient, "lynch")

	// 5. Create HTTP client with Yahoo rate limit
	httpClient := httputil.New(log).WithRateLimit(cfg.Yahoo.RequestsPerSec)

	// 6. Create external clients
	yahooClient := yahoo.NewClient(httpClient, log).WithBaseURL(cfg.Yahoo.BaseURL)

	geminiKey := ""
	if cfg.Gemini.Enabled {
		geminiKey = cfg.Gemini.APIKey
	}
	researchClient, err := research.NewClient(ctx, geminiKey, cfg.Gemini.Model, log)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("init research client: %w", err)
	}

	// 7. Create collector and runner
	col := collector.New(yahooClient, researchClient, cache, log).
		WithFundamentalsTTL(cfg.Yahoo.FundamentalsTTL)
	mailer := delivery.NewMailer(cfg.Email, log)
	runner := analysis.NewRunner(cfg, col, repo, mailer, log)

	return &runtime{
		cfg:    cfg,
		log:    log,
		runner: runner,
		repo:   repo,
		close:  closeAll,
	}, nil
}
