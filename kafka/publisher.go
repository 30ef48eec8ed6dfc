package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

var _ domain.EventPublisher = (*Publisher)(nil)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewProducerConfig returns the sarama settings used by the publisher
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

// PublishInvoiceCreated publishes an invoice created event with tracing
func (p *Publisher) PublishInvoiceCreated(ctx context.Context, inv domain.Invoice) error {
	event := NewInvoiceCreatedEvent(inv)
	event.EventID = newEventID()
	event.Timestamp = time.Now()

	return p.publish(ctx, message{
		topic:     TopicInvoices,
		eventType: EventTypeInvoiceCreated,
		eventID:   event.EventID,
		key:       inv.InvoiceID,
		payload:   event,
		attrs: []attribute.KeyValue{
			attribute.String("invoice.id", inv.InvoiceID),
			attribute.Float64("invoice.total", inv.Total),
			attribute.Int("invoice.lines", len(inv.Items)),
		},
	})
}

// PublishStockChanged publishes a stock changed event with tracing
func (p *Publisher) PublishStockChanged(ctx context.Context, tx domain.StockTransaction) error {
	event := NewStockChangedEvent(tx)
	event.EventID = newEventID()
	event.Timestamp = time.Now()

	return p.publish(ctx, message{
		topic:     TopicStock,
		eventType: EventTypeStockChanged,
		eventID:   event.EventID,
		key:       fmt.Sprintf("item_%d", tx.ItemID),
		payload:   event,
		attrs: []attribute.KeyValue{
			attribute.Int("item.id", tx.ItemID),
			attribute.String("stock.transaction_type", string(tx.Type)),
			attribute.Int("stock.quantity", tx.Quantity),
			attribute.Int("stock.new", tx.NewStock),
		},
	})
}

type message struct {
	topic     string
	eventType string
	eventID   string
	key       string
	payload   interface{}
	attrs     []attribute.KeyValue
}

func (p *Publisher) publish(ctx context.Context, m message) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+m.eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", m.topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", m.eventType),
			attribute.String("event.id", m.eventID),
		),
		trace.WithAttributes(m.attrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(m.payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte(headerEventType), Value: []byte(m.eventType)},
		{Key: []byte(headerEventID), Value: []byte(m.eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   m.topic,
		Key:     sarama.StringEncoder(m.key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", m.topic).
			Str("event_type", m.eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Debug(ctx).
		Str("event_id", m.eventID).
		Str("event_type", m.eventType).
		Str("topic", m.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)

func newEventID() string {
	return "evt_" + uuid.NewString()
}
