package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Addr     string
	LogLevel string

	StoreDriver string
	DBPath      string
	DatabaseURL string

	AIProvider      string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	GeminiAPIKey    string
	GeminiBaseURL   string
	GeminiModel     string
	PatternModel    string
	ValidatorModel  string
	HintModel       string
	ConfidenceModel string

	MaxValidationRetries int
	ExclusionCacheSize   int
	FallbackTimeout      time.Duration
	HintTimeout          time.Duration
	CORSOrigin           string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	provider := strings.ToLower(envOr("AI_PROVIDER", ProviderOpenAI))
	geminiModel := envOr("GEMINI_MODEL", "gemini-2.5-flash")
	model := func(key, openaiDefault string) string {
		if provider == ProviderGemini {
			return envOr(key, geminiModel)
		}
		return envOr(key, openaiDefault)
	}

	addr := envOr("ADDR", ":5000")
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		addr = ":" + p
	}

	return Config{
		Addr:     addr,
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		StoreDriver: strings.ToLower(envOr("STORE_DRIVER", StoreSQLite)),
		DBPath:      envOr("DB_PATH", "file:patternmaster.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		AIProvider:      provider,
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:   os.Getenv("GEMINI_BASE_URL"),
		GeminiModel:     geminiModel,
		PatternModel:    model("PATTERN_MODEL", "gpt-4-turbo-preview"),
		ValidatorModel:  model("VALIDATOR_MODEL", "gpt-4"),
		HintModel:       model("HINT_MODEL", "gpt-4-turbo-preview"),
		ConfidenceModel: model("CONFIDENCE_MODEL", "gpt-3.5-turbo"),

		MaxValidationRetries: envIntOr("MAX_VALIDATION_RETRIES", 3),
		ExclusionCacheSize:   envIntOr("EXCLUSION_CACHE_SIZE", 1024),
		FallbackTimeout:      envDurationOr("FALLBACK_TIMEOUT", 10*time.Second),
		HintTimeout:          envDurationOr("HINT_TIMEOUT", 30*time.Second),
		CORSOrigin:           envOr("CORS_ORIGIN", "*"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty when STORE_DRIVER=sqlite"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL cannot be empty when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q (got %q)", StoreSQLite, StorePostgres, c.StoreDriver))
	}

	switch c.AIProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY cannot be empty when AI_PROVIDER=openai"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY cannot be empty when AI_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("AI_PROVIDER must be %q or %q (got %q)", ProviderOpenAI, ProviderGemini, c.AIProvider))
	}

	if c.MaxValidationRetries < 1 {
		errs = append(errs, fmt.Errorf("MAX_VALIDATION_RETRIES must be at least 1 (got %d)", c.MaxValidationRetries))
	}
	if c.ExclusionCacheSize < 1 {
		errs = append(errs, fmt.Errorf("EXCLUSION_CACHE_SIZE must be at least 1 (got %d)", c.ExclusionCacheSize))
	}
	if c.FallbackTimeout <= 0 {
		errs = append(errs, errors.New("FALLBACK_TIMEOUT must be positive"))
	}
	if c.HintTimeout <= 0 {
		errs = append(errs, errors.New("HINT_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
