package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/lightspace/internal/analyzer"
	catalogrepo "github.com/tair/lightspace/internal/catalog/repository"
	"github.com/tair/lightspace/internal/storefront"
	delivery "github.com/tair/lightspace/internal/storefront/delivery/http"
	_ "github.com/tair/lightspace/internal/storefront/docs"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/repository"
	"github.com/tair/lightspace/kafka"
	"github.com/tair/lightspace/pkg/cache"
	"github.com/tair/lightspace/pkg/config"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/task"
	"github.com/tair/lightspace/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("storefront-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("session_store", cfg.SessionStore).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: "1.0.0",
		Endpoint:       cfg.JaegerEndpoint,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Catalog
	products, err := catalogrepo.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("catalog_file", cfg.CatalogFile).Msg("Failed to load catalog")
	}
	count, _ := products.Count(context.Background())
	logger.Logger.Info().Int("products", count).Msg("Catalog loaded")

	// Session store
	var redisClient *redis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient, err = cache.NewRedisClient(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to close Redis client")
			}
		}()
	}
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sessions := newSessionRepository(sweepCtx, cfg, redisClient)

	// Order events
	publisher := newOrderPublisher(cfg)
	defer publisher.Close()

	tasks := task.NewRegistry()
	defer tasks.Close()

	// Initialize handler with Wire DI
	storefrontHandler, err := storefront.InitializeHandler(
		cfg,
		prometheus.DefaultRegisterer,
		repository.NewTracingSessionRepository(sessions),
		catalogrepo.NewTracingProductRepository(products),
		publisher,
		analyzer.NewStubAnalyzer(cfg.AnalysisDelay),
		tasks,
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	var limiter *delivery.RateLimiter
	if redisClient != nil && cfg.RateLimit.Requests > 0 {
		limiter = delivery.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		logger.Logger.Info().
			Int("requests", cfg.RateLimit.Requests).
			Dur("window", cfg.RateLimit.Window).
			Msg("Rate limiting enabled")
	}

	server := newHTTPServer(storefrontHandler, limiter, cfg.HTTPPort)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func newHTTPServer(h *delivery.StorefrontHandler, limiter *delivery.RateLimiter, port string) *http.Server {
	router := mux.NewRouter()

	middlewareConfig := h.GetMiddlewareConfig()
	delivery.RegisterMiddlewares(router, middlewareConfig)
	if limiter != nil {
		router.Use(limiter.Middleware())
	}

	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	delivery.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return &http.Server{
		Addr:              ":" + port,
		Handler:           delivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newSessionRepository(ctx context.Context, cfg *config.Config, client *redis.Client) domain.SessionRepository {
	if client == nil {
		logger.Logger.Info().
			Dur("ttl", cfg.SessionTTL).
			Dur("sweep_interval", cfg.SweepInterval).
			Msg("Using in-memory session store")
		repo := repository.NewMemorySessionRepository(cfg.SessionTTL)
		go repo.RunSweeper(ctx, cfg.SweepInterval)
		return repo
	}

	logger.Logger.Info().Dur("ttl", cfg.SessionTTL).Msg("Using Redis session store")
	return repository.NewRedisSessionRepository(client, cfg.SessionTTL)
}

func newOrderPublisher(cfg *config.Config) kafka.OrderPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, order events will not be published")
		return kafka.NoopPublisher{}
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, order events disabled")
		return kafka.NoopPublisher{}
	}
	return publisher
}
