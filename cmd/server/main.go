package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/patternmaster/internal/api"
	"github.com/vytor/patternmaster/internal/config"
	"github.com/vytor/patternmaster/internal/db"
	"github.com/vytor/patternmaster/internal/hint"
	"github.com/vytor/patternmaster/internal/llm"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/pattern"
	"github.com/vytor/patternmaster/internal/repository/sqlstore"
	"github.com/vytor/patternmaster/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("PatternMaster server starting")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s store=%s provider=%s", cfg.Addr, cfg.StoreDriver, cfg.AIProvider)
	log.Debug("pattern_model=%s validator_model=%s hint_model=%s confidence_model=%s",
		cfg.PatternModel, cfg.ValidatorModel, cfg.HintModel, cfg.ConfidenceModel)
	log.Debug("max_validation_retries=%d exclusion_cache_size=%d fallback_timeout=%s hint_timeout=%s",
		cfg.MaxValidationRetries, cfg.ExclusionCacheSize, cfg.FallbackTimeout, cfg.HintTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		_ = database.Close()
	}()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		log.Error("failed to create %s client: %v", cfg.AIProvider, err)
		os.Exit(1)
	}

	completedRepo := sqlstore.NewCompletedPatternRepository(database)
	userRepo := sqlstore.NewUserRepository(database)

	patternSettings := pattern.Settings{
		PatternModel:         cfg.PatternModel,
		ValidatorModel:       cfg.ValidatorModel,
		MaxValidationRetries: cfg.MaxValidationRetries,
		FallbackTimeout:      cfg.FallbackTimeout,
	}
	hintSettings := hint.Settings{
		HintModel:       cfg.HintModel,
		ConfidenceModel: cfg.ConfidenceModel,
		Timeout:         cfg.HintTimeout,
	}

	generator := pattern.NewGenerator(client, patternSettings)
	patternService, err := services.NewPatternService(generator, completedRepo, cfg.ExclusionCacheSize)
	if err != nil {
		log.Error("failed to create pattern service: %v", err)
		os.Exit(1)
	}
	hintService := services.NewHintService(hint.NewPipeline(client, hintSettings))
	userService := services.NewUserService(userRepo, completedRepo)

	srv := &api.Server{
		PatternService: patternService,
		HintService:    hintService,
		UserService:    userService,
		Store:          database,
		CORSOrigin:     cfg.CORSOrigin,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(patternSettings.MaxDuration(), hintSettings.MaxDuration()),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	log.Info("PatternMaster server stopped")
}

func openStore(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.StoreDriver == config.StorePostgres {
		return db.Open(ctx, db.Postgres, cfg.DatabaseURL)
	}
	return db.Open(ctx, db.SQLite, cfg.DBPath)
}

func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.AIProvider == config.ProviderGemini {
		return llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	}
	return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
}

const (
	minWriteTimeout    = 60 * time.Second
	writeTimeoutMargin = 10 * time.Second
)

// writeTimeout leaves room for the slowest handler's provider calls plus the
// store and encoding work around them.
func writeTimeout(budgets ...time.Duration) time.Duration {
	longest := time.Duration(0)
	for _, b := range budgets {
		longest = max(longest, b)
	}
	return max(minWriteTimeout, longest+writeTimeoutMargin)
}
