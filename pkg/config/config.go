package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External collaborators
	Gemini GeminiConfig
	Yahoo  YahooConfig

	// Portfolio
	PortfolioFile string

	// DashboardFile is where each run writes the rendered HTML dashboard.
	// Empty disables the file output; the API still serves it live.
	DashboardFile string

	// Analysis thresholds and display options
	Analysis AnalysisConfig

	// Daily run schedule and delivery
	ScheduleCron string
	Email        EmailConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// GeminiConfig holds the generative-AI research collaborator configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	Enabled bool
}

// YahooConfig holds the market-data collaborator configuration
type YahooConfig struct {
	BaseURL         string
	RequestsPerSec  float64
	FundamentalsTTL time.Duration
}

// AnalysisConfig holds recommendation-engine thresholds and report display
// options. These are handed to the engine as an explicit value, never read
// from the environment inside the engine itself.
type AnalysisConfig struct {
	PEGOvervalued         float64 // PEG above this is trading rich
	PEGUndervalued        float64 // PEG below this with growth is cheap
	InsiderSellThreshold  float64 // net USD sold that triggers an alert
	DebtGrowthMarginPP    float64 // debt-vs-revenue growth margin, percentage points
	CatalystLookaheadDays int
	CatalystMinConfidence float64
	NeedsCatalystWeight   float64 // position weight that demands a catalyst
	TrimTriggerGainPct    float64 // unrealized gain that triggers trim review
	ConcentrationCeiling  float64 // position weight that triggers trim review
	TrimTargetLowPct      float64
	TrimTargetHighPct     float64

	SortBy             string // weight, gain_percent, alerts, ticker
	ShowSmallPositions bool
	SmallPositionFloor float64 // minimum market value to display, USD
}

// EmailConfig holds digest delivery configuration
type EmailConfig struct {
	Recipient string
	Subject   string
	From      string
	SMTPHost  string
	SMTPPort  string
	Password  string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration after loading the given env file. An
// explicitly named file overrides variables already in the environment;
// an empty path falls back to probing the usual .env locations.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		loadEnvFile()
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// External collaborators
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Enabled: getEnvAsBool("GEMINI_ENABLED", true),
		},

		Yahoo: YahooConfig{
			BaseURL:         getEnv("YAHOO_BASE_URL", "https://finance.yahoo.com"),
			RequestsPerSec:  getEnvAsFloat("YAHOO_REQUESTS_PER_SEC", 1.0),
			FundamentalsTTL: getEnvAsDuration("YAHOO_FUNDAMENTALS_TTL", "24h"),
		},

		// Portfolio
		PortfolioFile: getEnv("PORTFOLIO_FILE", "portfolio_tickers.txt"),
		DashboardFile: getEnv("DASHBOARD_FILE", "index.html"),

		// Analysis
		Analysis: AnalysisConfig{
			PEGOvervalued:         getEnvAsFloat("PEG_OVERVALUED", 2.0),
			PEGUndervalued:        getEnvAsFloat("PEG_UNDERVALUED", 1.0),
			InsiderSellThreshold:  getEnvAsFloat("INSIDER_SELL_THRESHOLD", 10_000_000),
			DebtGrowthMarginPP:    getEnvAsFloat("DEBT_GROWTH_MARGIN_PP", 10),
			CatalystLookaheadDays: getEnvAsInt("CATALYST_LOOKAHEAD_DAYS", 90),
			CatalystMinConfidence: getEnvAsFloat("CATALYST_MIN_CONFIDENCE", 0.5),
			NeedsCatalystWeight:   getEnvAsFloat("NEEDS_CATALYST_WEIGHT", 0.05),
			TrimTriggerGainPct:    getEnvAsFloat("TRIM_TRIGGER_GAIN_PCT", 200),
			ConcentrationCeiling:  getEnvAsFloat("CONCENTRATION_CEILING", 0.10),
			TrimTargetLowPct:      getEnvAsFloat("TRIM_TARGET_LOW_PCT", 0.08),
			TrimTargetHighPct:     getEnvAsFloat("TRIM_TARGET_HIGH_PCT", 0.10),
			SortBy:                getEnv("SORT_BY", "weight"),
			ShowSmallPositions:    getEnvAsBool("SHOW_SMALL_POSITIONS", true),
			SmallPositionFloor:    getEnvAsFloat("SMALL_POSITION_FLOOR", 1000),
		},

		// Schedule: 8am EST weekdays, same as the dashboard's publishing cadence
		ScheduleCron: getEnv("SCHEDULE_CRON", "0 0 13 * * 1-5"),

		Email: EmailConfig{
			Recipient: getEnv("EMAIL_RECIPIENT", ""),
			Subject:   getEnv("EMAIL_SUBJECT", "Daily Portfolio Analysis"),
			From:      getEnv("EMAIL_FROM", ""),
			SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:  getEnv("SMTP_PORT", "587"),
			Password:  getEnv("EMAIL_PASSWORD", ""),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Analysis.SortBy {
	case "weight", "gain_percent", "alerts", "ticker":
	default:
		return fmt.Errorf("SORT_BY must be one of: weight, gain_percent, alerts, ticker")
	}

	if c.Analysis.TrimTargetLowPct > c.Analysis.TrimTargetHighPct {
		return fmt.Errorf("TRIM_TARGET_LOW_PCT must not exceed TRIM_TARGET_HIGH_PCT")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
