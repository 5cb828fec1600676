package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Firecrawl (hosted fetch service)
	FirecrawlAPIKey  string
	FirecrawlBaseURL string

	// Target site
	RealtorBaseURL string

	// Scraper
	PageLimit      int
	RateLimitMs    int
	MaxRetries     int
	MaxConcurrency int
	CrawlWaitMs    int
	PollIntervalMs int

	// Output
	CSVOutputPath  string
	JSONOutputPath string

	// Web front end
	HTTPAddr string

	// PostgreSQL
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file (if present) and returns a populated Config.
// A missing FIRECRAWL_API_KEY is a fatal configuration error: the pipeline
// cannot make a single network call without it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlBaseURL: getEnv("FIRECRAWL_API_URL", "https://api.firecrawl.dev"),

		RealtorBaseURL: getEnv("REALTOR_BASE_URL", "https://www.realtor.com"),

		PageLimit:      getEnvInt("PAGE_LIMIT", 10),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),
		CrawlWaitMs:    getEnvInt("CRAWL_WAIT_MS", 2000),
		PollIntervalMs: getEnvInt("POLL_INTERVAL_MS", 3000),

		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "./output/listings.csv"),
		JSONOutputPath: getEnv("JSON_OUTPUT_PATH", "./output/listings.json"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "realtor_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}

	if cfg.FirecrawlAPIKey == "" {
		return nil, fmt.Errorf("FIRECRAWL_API_KEY is not set — " +
			"export it or add it to .env before running")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
