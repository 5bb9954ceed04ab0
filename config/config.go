package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultTaxRate is the VAT applied on invoices when TAX_RATE is unset.
var DefaultTaxRate = decimal.RequireFromString("0.16")

type Config struct {
	Port        string
	CORSOrigins []string

	// Database
	DSN    string
	DBName string
	Seed   bool

	TaxRate  decimal.Decimal
	Timezone string

	LogMode string
	LogFile string
}

// Load reads .env (optional) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.S().Debug(".env not found; continuing with environment variables")
	}

	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	taxRate := DefaultTaxRate
	if raw := strings.TrimSpace(os.Getenv("TAX_RATE")); raw != "" {
		taxRate, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
	}

	seed, _ := strconv.ParseBool(envOrDefault("DB_SEED", "true"))

	return &Config{
		Port:        envOrDefault("PORT", "8080"),
		CORSOrigins: parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		DSN:         dsn,
		DBName:      dbName,
		Seed:        seed,
		TaxRate:     taxRate,
		Timezone:    envOrDefault("TZ_LOCATION", "Local"),
		LogMode:     envOrDefault("LOG_MODE", "development"),
		LogFile:     strings.TrimSpace(os.Getenv("LOG_FILE")),
	}, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
