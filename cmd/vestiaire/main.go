package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/vestiaire-fc/vestiaire/internal/app"
	"github.com/vestiaire-fc/vestiaire/internal/assistant"
	"github.com/vestiaire-fc/vestiaire/internal/auth"
	"github.com/vestiaire-fc/vestiaire/internal/export"
	"github.com/vestiaire-fc/vestiaire/internal/ledger"
	"github.com/vestiaire-fc/vestiaire/internal/matches"
	"github.com/vestiaire-fc/vestiaire/internal/observability"
	"github.com/vestiaire-fc/vestiaire/internal/platform/cache"
	"github.com/vestiaire-fc/vestiaire/internal/platform/db"
	"github.com/vestiaire-fc/vestiaire/internal/roster"
	"github.com/vestiaire-fc/vestiaire/internal/shared"
	"github.com/vestiaire-fc/vestiaire/internal/standings"
	standingshttp "github.com/vestiaire-fc/vestiaire/internal/standings/http"
	"github.com/vestiaire-fc/vestiaire/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	ledgerService := ledger.NewService(ledger.NewRepository(pool), logger, cfg.ClubLocale)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	standingsCache := standings.NewCache(redisClient, cfg.StandingsCacheTTL)
	standingsService := standings.NewService(standings.NewRepository(pool), standingsCache, logger, cfg.ClubName)
	standingsHandler := standingshttp.NewHandler(logger, standingsService)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	matchService := matches.NewService(matches.NewRepository(pool), standingsService, jobClient, logger, cfg.ClubName)
	matchHandler := matches.NewHandler(logger, matchService)

	rosterHandler := roster.NewHandler(logger, pool)

	gotenberg := export.NewGotenbergClient(cfg.GotenbergURL)
	exportHandler := export.NewHandler(logger, gotenberg, ledgerService, standingsService, cfg.ClubName)

	assistantClient := assistant.NewClient(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantTimeout, assistant.DefaultRetryConfig)
	assistantService := assistant.NewService(assistantClient, logger, cfg.ClubName)
	assistantHandler := assistant.NewHandler(logger, assistantService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		LedgerHandler:    ledgerHandler,
		StandingsHandler: standingsHandler,
		MatchHandler:     matchHandler,
		RosterHandler:    rosterHandler,
		ExportHandler:    exportHandler,
		AssistantHandler: assistantHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
