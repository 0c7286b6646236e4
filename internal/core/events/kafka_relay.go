package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

var jsonMarshal = json.Marshal

// KafkaWriter is the subset of *kafka.Writer the relay needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type relayMessage struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt string      `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// KafkaRelay forwards bus events to a Kafka topic. Publishing never blocks the
// bus: events go through a bounded buffer and are dropped when it is full.
type KafkaRelay struct {
	writer    KafkaWriter
	events    chan Event
	logger    *slog.Logger
	closeChan chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewKafkaRelay(brokers []string, topic string, bufferSize int, logger *slog.Logger) *KafkaRelay {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return NewKafkaRelayWithWriter(writer, bufferSize, logger)
}

func NewKafkaRelayWithWriter(writer KafkaWriter, bufferSize int, logger *slog.Logger) *KafkaRelay {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	r := &KafkaRelay{
		writer:    writer,
		events:    make(chan Event, bufferSize),
		logger:    logger.With("component", "kafka_relay"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go r.eventLoop()
	return r
}

// Attach subscribes the relay to every lifecycle event on the bus.
func (r *KafkaRelay) Attach(bus *EventBus) {
	for _, eventType := range LifecycleEventTypes {
		bus.Subscribe(eventType, r.Handle)
	}
}

func (r *KafkaRelay) Handle(_ context.Context, event Event) error {
	select {
	case r.events <- event:
	default:
		r.logger.Warn("kafka relay queue full, dropping event",
			"event_type", event.EventType(),
			"event_id", event.EventID())
	}
	return nil
}

func (r *KafkaRelay) eventLoop() {
	defer close(r.done)
	for {
		select {
		case event := <-r.events:
			r.send(context.Background(), event)
		case <-r.closeChan:
			// flush what is already buffered
			for {
				select {
				case event := <-r.events:
					r.send(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

func (r *KafkaRelay) send(ctx context.Context, event Event) {
	value, err := jsonMarshal(relayMessage{
		ID:         event.EventID(),
		Type:       event.EventType(),
		OccurredAt: event.OccurredAt().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Data:       event.Payload(),
	})
	if err != nil {
		r.logger.Error("failed to serialize event", "error", err, "event_id", event.EventID())
		return
	}

	err = r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventType()),
		Value: value,
	})
	if err != nil {
		r.logger.Error("failed to produce event",
			"error", err,
			"event_type", event.EventType(),
			"event_id", event.EventID())
	}
}

func (r *KafkaRelay) Close() {
	r.closeOnce.Do(func() {
		close(r.closeChan)
		<-r.done
		if err := r.writer.Close(); err != nil {
			r.logger.Error("failed to close kafka writer", "error", err)
		}
	})
}
