package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/tiffin-pos/docs"
	"github.com/tair/tiffin-pos/internal/pos"
	httpDelivery "github.com/tair/tiffin-pos/internal/pos/delivery/http"
	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/internal/pos/repository"
	"github.com/tair/tiffin-pos/internal/pos/usecase/command"
	"github.com/tair/tiffin-pos/kafka"
	"github.com/tair/tiffin-pos/pkg/config"
	"github.com/tair/tiffin-pos/pkg/logger"
	"github.com/tair/tiffin-pos/pkg/timeutil"
	"github.com/tair/tiffin-pos/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("pos-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.POS.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	logger.Logger.Info().
		Str("service", cfg.POS.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.Log.Level).
		Str("store_backend", cfg.Store.Backend).
		Msg("Starting POS service")

	if err := timeutil.SetLocation(cfg.POS.Timezone); err != nil {
		logger.Logger.Warn().Err(err).Msg("Falling back to default timezone")
	}

	// Initialize tracing
	tracing.InstallPropagator()
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.Options{
			ServiceName:    cfg.POS.ServiceName,
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
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	ctx := context.Background()

	// Open record store
	store, err := pos.OpenStore(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer store.Close()

	// Event publisher
	var publisher domain.EventPublisher = domain.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events will not be published")
		} else {
			defer kafkaPublisher.Close()
			breaker := kafka.NewCircuitBreaker("kafka", cfg.Kafka.BreakerFailures, cfg.Kafka.BreakerCooldown)
			publisher = kafka.NewBreakerPublisher(kafkaPublisher, breaker)
		}
	}

	if cfg.POS.SeedDefaultMenu {
		seedMenu(ctx, store)
	}

	// Initialize handler with Wire DI
	handler, err := pos.InitializeHTTPHandler(cfg, store, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	server := newHTTPServer(cfg, handler, store)

	go func() {
		logger.Logger.Info().
			Str("addr", server.Addr).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func seedMenu(ctx context.Context, store repository.Store) {
	seeded, err := command.NewSeedMenuHandler(pos.ProvideRepository(store)).Handle(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed default menu")
	}
	if seeded {
		logger.Logger.Info().Msg("Default menu seeded")
	}
}

func newHTTPServer(cfg *config.Config, handler *httpDelivery.POSHandler, store repository.Store) *http.Server {
	// Setup router
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig(cfg.Server.RequestTimeout, cfg.Server.CorsAllowedOrigins)
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, store)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           httpDelivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
