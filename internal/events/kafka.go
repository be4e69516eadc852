package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher queues events in an inbox drained by a single writer goroutine.
type KafkaPublisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	logger  *slog.Logger
	once    sync.Once
	closeCh chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, buf int, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		logger:  logger,
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until Close is called.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.logger.Warn("publish catalog event", slog.String("topic", p.w.Topic), slog.Any("error", err))
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			p.logger.Warn("close kafka writer", slog.Any("error", err))
		}
	}()
}

// Publish enqueues ev. When the inbox is full the event is dropped and logged.
func (p *KafkaPublisher) Publish(_ context.Context, ev Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("encode catalog event", slog.String("event_type", ev.EventType), slog.Any("error", err))
		return
	}
	msg := kafka.Message{
		Key:   ev.PartitionKey(),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.EventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}
	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn("catalog event inbox full, dropping event", slog.String("event_type", ev.EventType), slog.Int("product_id", ev.ProductID))
	}
}

// Close stops accepting events, flushes the inbox and waits for the writer to exit.
func (p *KafkaPublisher) Close() {
	p.once.Do(func() { close(p.inbox) })
	<-p.closeCh
}
