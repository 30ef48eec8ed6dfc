package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/tair/tiffin-pos/pkg/logger"
)

// Options configure the process tracer
type Options struct {
	ServiceName    string
	Environment    string
	JaegerEndpoint string
	// SampleRatio outside (0,1) samples everything
	SampleRatio float64
}

// Sampler picks the root sampler for opts. Child spans follow their parent so a
// checkout's store and kafka spans stay in one trace.
func (o Options) Sampler() sdktrace.Sampler {
	if o.SampleRatio <= 0 || o.SampleRatio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.SampleRatio))
}

// InitTracer installs a Jaeger-backed provider as the global tracer
func InitTracer(opts Options) (*sdktrace.TracerProvider, error) {
	logger.Logger.Info().
		Str("service", opts.ServiceName).
		Str("endpoint", opts.JaegerEndpoint).
		Float64("sample_ratio", opts.SampleRatio).
		Msg("Initializing tracer")

	exporter, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(opts.JaegerEndpoint)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion("1.0.0"),
			attribute.String("deployment.environment", opts.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(opts.Sampler()),
	)
	otel.SetTracerProvider(tp)
	InstallPropagator()

	logger.Logger.Info().Msg("Tracer initialized successfully")
	return tp, nil
}

// InstallPropagator sets the W3C propagator used for HTTP and kafka headers.
// It is safe to call without a provider, so events carry trace context even
// when spans are not exported.
func InstallPropagator() {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
}

// Shutdown flushes pending spans
func Shutdown(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}
