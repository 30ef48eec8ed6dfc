package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("pos-repository")

// TracingStore wraps a Store with OpenTelemetry spans
type TracingStore struct {
	Store
	backend string
}

// NewTracingStore creates a new store with tracing
func NewTracingStore(inner Store, backend string) *TracingStore {
	return &TracingStore{Store: inner, backend: backend}
}

// Get with tracing
func (s *TracingStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "store.Get",
		trace.WithAttributes(
			attribute.String("store.backend", s.backend),
			attribute.String("record.key", key),
		),
	)
	defer span.End()

	value, err := s.Store.Get(ctx, key)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("record.present", value != nil),
		attribute.Int("record.bytes", len(value)),
	)
	return value, nil
}

// Set with tracing
func (s *TracingStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := tracer.Start(ctx, "store.Set",
		trace.WithAttributes(
			attribute.String("store.backend", s.backend),
			attribute.String("record.key", key),
			attribute.Int("record.bytes", len(value)),
		),
	)
	defer span.End()

	if err := s.Store.Set(ctx, key, value); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Atomic with tracing
func (s *TracingStore) Atomic(ctx context.Context, keys []string, fn AtomicFunc) error {
	ctx, span := tracer.Start(ctx, "store.Atomic",
		trace.WithAttributes(
			attribute.String("store.backend", s.backend),
			attribute.StringSlice("record.keys", keys),
		),
	)
	defer span.End()

	attempts := 0
	written := 0
	err := s.Store.Atomic(ctx, keys, func(current map[string][]byte) (map[string][]byte, error) {
		attempts++
		changed, err := fn(current)
		written = len(changed)
		return changed, err
	})

	span.SetAttributes(
		attribute.Int("atomic.attempts", attempts),
		attribute.Int("atomic.records_written", written),
	)
	if err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
