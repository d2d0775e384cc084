package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds broker settings for order events
type KafkaConfig struct {
	Brokers []string
	GroupID string
}

// RateLimitConfig bounds requests per client within a sliding window.
// Requests of zero disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Config holds the storefront service configuration
type Config struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	HTTPPort        string
	RequestTimeout  time.Duration
	SessionStore    string
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	Redis           RedisConfig
	Kafka           KafkaConfig
	RateLimit       RateLimitConfig
	CatalogFile     string
	OverlayDuration time.Duration
	AnalysisDelay   time.Duration
	TracingEnabled  bool
	JaegerEndpoint  string

	problems []string
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() *Config {
	cfg := &Config{
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "storefront-service"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		SessionStore: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			GroupID: getEnv("KAFKA_GROUP_ID", "lightspace-orderlog"),
		},
		CatalogFile:    getEnv("CATALOG_FILE", ""),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}

	cfg.RequestTimeout = cfg.duration("REQUEST_TIMEOUT", 30*time.Second)
	cfg.SessionTTL = cfg.duration("SESSION_TTL", 24*time.Hour)
	cfg.SweepInterval = cfg.duration("SESSION_SWEEP_INTERVAL", time.Minute)
	cfg.OverlayDuration = cfg.duration("OVERLAY_DURATION", time.Second)
	cfg.AnalysisDelay = cfg.duration("ANALYSIS_DELAY", 3*time.Second)
	cfg.Redis.DB = cfg.integer("REDIS_DB", 0)
	cfg.RateLimit.Requests = cfg.integer("RATE_LIMIT_REQUESTS", 100)
	cfg.RateLimit.Window = cfg.duration("RATE_LIMIT_WINDOW", time.Minute)
	cfg.TracingEnabled = cfg.boolean("TRACING_ENABLED", false)

	return cfg
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Validate reports every malformed or inconsistent setting
func (c *Config) Validate() error {
	problems := append([]string(nil), c.problems...)

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("SESSION_STORE must be %q or %q, got %q",
			SessionStoreMemory, SessionStoreRedis, c.SessionStore))
	}
	if c.HTTPPort == "" {
		problems = append(problems, "HTTP_PORT must not be empty")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		problems = append(problems, "SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.OverlayDuration <= 0 {
		problems = append(problems, "OVERLAY_DURATION must be positive")
	}
	if c.RateLimit.Requests < 0 {
		problems = append(problems, "RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		problems = append(problems, "RATE_LIMIT_WINDOW must be positive")
	}
	if c.AnalysisDelay < 0 {
		problems = append(problems, "ANALYSIS_DELAY must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return d
}

func (c *Config) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return n
}

func (c *Config) boolean(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return b
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
