package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	LogLevel  string
	LogFormat string

	DBMaxConns         int32
	DBStatementTimeout time.Duration

	// Lending terms
	LoanPeriod        time.Duration
	OverdueFinePerDay decimal.Decimal
	DamageFine        decimal.Decimal
	ReadRetryBackoff  time.Duration

	AuthEnabled        bool
	JWTSecret          string
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_STATEMENT_TIMEOUT", "5s")
	v.SetDefault("LOAN_PERIOD", "720h")
	v.SetDefault("OVERDUE_FINE_PER_DAY", "1")
	v.SetDefault("DAMAGE_FINE", "10")
	v.SetDefault("READ_RETRY_BACKOFF", "100ms")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:  v.GetString("PGSQL_URL"),
		Port:         v.GetString("PORT"),
		IsProduction: v.GetBool("IS_PRODUCTION"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		DBMaxConns:   v.GetInt32("DB_MAX_CONNS"),
		AuthEnabled:  v.GetBool("AUTH_ENABLED"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		RateLimit:    v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
		log.Printf("Warning: Invalid value for DB_MAX_CONNS. Defaulting to %d.\n", cfg.DBMaxConns)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.AuthEnabled && cfg.JWTSecret == defaultJWTSecret {
		log.Println("Warning: AUTH_ENABLED is set but JWT_SECRET is the default insecure key.")
	}

	cfg.DBStatementTimeout = durationOrDefault(v, "DB_STATEMENT_TIMEOUT", 5*time.Second)
	cfg.LoanPeriod = durationOrDefault(v, "LOAN_PERIOD", 30*24*time.Hour)
	cfg.ReadRetryBackoff = durationOrDefault(v, "READ_RETRY_BACKOFF", 100*time.Millisecond)

	var err error
	if cfg.OverdueFinePerDay, err = nonNegativeAmount(v, "OVERDUE_FINE_PER_DAY"); err != nil {
		return nil, err
	}
	if cfg.DamageFine, err = nonNegativeAmount(v, "DAMAGE_FINE"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// durationOrDefault parses key as a positive duration, warning and falling back to def otherwise.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
}

func nonNegativeAmount(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := v.GetString(key)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return amount, nil
}
