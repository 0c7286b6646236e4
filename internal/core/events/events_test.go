package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/segmentio/kafka-go"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

type FakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *FakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *FakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FakeWriter) Messages() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.messages...)
}

var _ = Describe("EventBus", func() {
	var (
		bus *events.EventBus
		lg  *slog.Logger
		ctx context.Context
	)

	BeforeEach(func() {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
		bus = events.NewEventBus(lg)
		ctx = context.Background()
	})

	It("should deliver to typed and wildcard subscribers", func() {
		var mu sync.Mutex
		var got []string
		record := func(tag string) events.Handler {
			return func(_ context.Context, e events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				got = append(got, tag+":"+e.EventType())
				return nil
			}
		}
		bus.Subscribe(events.EventTypeStageChanged, record("typed"))
		bus.Subscribe(events.AllEvents, record("all"))

		Expect(bus.Publish(ctx, events.NewStageChangedEvent("a-1", "hired"))).To(Succeed())
		Expect(bus.Publish(ctx, events.NewJobClosedEvent("j-1", "Designer", 2))).To(Succeed())
		bus.Wait()

		Expect(got).To(ConsistOf(
			"typed:applicant.stage_changed",
			"all:applicant.stage_changed",
			"all:job.closed",
		))
	})

	It("should keep async handlers running after the request context ends", func() {
		reqCtx, cancel := context.WithCancel(ctx)
		var handlerErr error
		bus.Subscribe(events.EventTypeMerged, func(c context.Context, _ events.Event) error {
			handlerErr = c.Err()
			return nil
		})

		Expect(bus.Publish(reqCtx, events.NewMergedEvent("m", []string{"d"}))).To(Succeed())
		cancel()
		bus.Wait()
		Expect(handlerErr).NotTo(HaveOccurred())
	})

	It("should surface handler errors only from PublishSync", func() {
		boom := errors.New("boom")
		bus.Subscribe(events.EventTypeOfferSent, func(context.Context, events.Event) error { return boom })

		Expect(bus.Publish(ctx, events.NewOfferSentEvent("a", "a@x.com", "1", "2026-01-01"))).To(Succeed())
		bus.Wait()
		Expect(bus.PublishSync(ctx, events.NewOfferSentEvent("a", "a@x.com", "1", "2026-01-01"))).To(MatchError(boom))
	})

	It("should carry the payload of lifecycle events", func() {
		e := events.NewBulkDecidedEvent("accepted", 2, 1)
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.Payload()).To(HaveKeyWithValue("successful", 2))
	})
})

var _ = Describe("KafkaRelay", func() {
	var (
		writer *FakeWriter
		relay  *events.KafkaRelay
		bus    *events.EventBus
	)

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		writer = &FakeWriter{}
		relay = events.NewKafkaRelayWithWriter(writer, 10, lg)
		bus = events.NewEventBus(lg)
		relay.Attach(bus)
	})

	It("should forward lifecycle events as JSON keyed by type", func() {
		Expect(bus.PublishSync(context.Background(), events.NewOfferRespondedEvent("a-1", "accepted", "hired"))).To(Succeed())
		relay.Close()

		msgs := writer.Messages()
		Expect(msgs).To(HaveLen(1))
		Expect(string(msgs[0].Key)).To(Equal(events.EventTypeOfferResponded))

		var body map[string]interface{}
		Expect(json.Unmarshal(msgs[0].Value, &body)).To(Succeed())
		Expect(body["type"]).To(Equal(events.EventTypeOfferResponded))
		Expect(body["data"]).To(HaveKeyWithValue("stage", "hired"))
		Expect(writer.closed).To(BeTrue())
	})

	It("should ignore events outside the lifecycle set", func() {
		Expect(bus.PublishSync(context.Background(), events.NewEvent("debug.ping", nil))).To(Succeed())
		relay.Close()
		Expect(writer.Messages()).To(BeEmpty())
	})

	It("should not fail the publisher when Kafka is down", func() {
		writer.err = errors.New("broker unavailable")
		Expect(bus.PublishSync(context.Background(), events.NewStageChangedEvent("a-1", "declined"))).To(Succeed())
		relay.Close()
		Expect(writer.Messages()).To(BeEmpty())
	})

	It("should close only once", func() {
		relay.Close()
		Expect(relay.Close).NotTo(Panic())
	})
})
