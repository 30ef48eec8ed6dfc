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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/tiffin-pos/kafka"
	"github.com/tair/tiffin-pos/pkg/config"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/tracing"
)

const metricsAddr = ":9102"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("pos-events", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	serviceName := cfg.POS.ServiceName + "-events"
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	logger.Logger.Info().
		Str("service", serviceName).
		Strs("brokers", cfg.Kafka.Brokers).
		Str("group_id", cfg.Kafka.ConsumerGroup).
		Msg("Starting POS event audit")

	tracing.InstallPropagator()
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.Options{
			ServiceName:    serviceName,
			Environment:    cfg.Environment,
			JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tracing.Shutdown(ctx, tp)
			}()
		}
	}

	consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, []string{kafka.TopicInvoices, kafka.TopicStock})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	kafka.NewAuditor().Register(consumer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Prometheus metrics endpoint
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: metricsAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down event audit...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = server.Shutdown(shutdownCtx)
}
