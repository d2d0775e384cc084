// Command orderlog consumes order events published by the storefront and
// writes one structured log line per order.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	catalog "github.com/tair/lightspace/internal/catalog/domain"
	"github.com/tair/lightspace/kafka"
	"github.com/tair/lightspace/pkg/config"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("orderlog", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("orderlog", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "orderlog",
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

	consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, []string{kafka.TopicOrderCompleted})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	var orders, revenue atomic.Int64
	consumer.RegisterHandler(kafka.EventTypeOrderCompleted, func(ctx context.Context, event kafka.OrderCompletedEvent) error {
		n := orders.Add(1)
		total := revenue.Add(event.Total)

		logger.Info(ctx).
			Str("order_number", event.OrderNumber).
			Str("session_id", event.SessionID).
			Int("lines", len(event.Lines)).
			Int("items", event.ItemCount).
			Str("total", catalog.FormatWon(event.Total)).
			Str("city", event.City).
			Str("country", event.Country).
			Time("placed_at", event.PlacedAt).
			Int64("orders_seen", n).
			Str("revenue_seen", catalog.FormatWon(total)).
			Msg("Order received")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().
		Int64("orders_seen", orders.Load()).
		Msg("Shutting down order log...")
}
