package mailer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal/mailer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMailer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mailer Suite")
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []mailer.Envelope
	failFor map[string]bool
	block   chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, env mailer.Envelope) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[env.To] {
		return errors.New("smtp rejected recipient")
	}
	f.sent = append(f.sent, env)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var _ = Describe("Relay", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	It("should deliver queued mail and drain on shutdown", func() {
		sender := &fakeSender{failFor: map[string]bool{"bad@x.com": true}}
		relay := mailer.NewRelay(sender, mailer.Config{Workers: 2, QueueSize: 10}, logger)

		Expect(relay.Enqueue("a@x.com", "s", "<p>1</p>")).To(Succeed())
		Expect(relay.Enqueue("bad@x.com", "s", "<p>2</p>")).To(Succeed())
		Expect(relay.Enqueue("c@x.com", "s", "<p>3</p>")).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		relay.Shutdown(ctx)

		delivered, failed := relay.Stats()
		Expect(delivered).To(Equal(int64(2)))
		Expect(failed).To(Equal(int64(1)))
		Expect(sender.count()).To(Equal(2))
	})

	It("should reject mail when the queue is full", func() {
		sender := &fakeSender{block: make(chan struct{})}
		relay := mailer.NewRelay(sender, mailer.Config{Workers: 1, QueueSize: 1}, logger)

		var rejected bool
		for i := 0; i < 5; i++ {
			if err := relay.Enqueue("a@x.com", "s", "b"); errors.Is(err, mailer.ErrQueueFull) {
				rejected = true
				break
			}
		}
		Expect(rejected).To(BeTrue())

		close(sender.block)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		relay.Shutdown(ctx)
	})

	It("should deliver every accepted message when shutdown races intake", func() {
		sender := &fakeSender{}
		relay := mailer.NewRelay(sender, mailer.Config{Workers: 4, QueueSize: 1000}, logger)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 50; j++ {
					err := relay.Enqueue("a@x.com", "s", "b")
					if err == nil {
						mu.Lock()
						accepted++
						mu.Unlock()
						continue
					}
					Expect(err).To(MatchError(mailer.ErrRelayStopped))
				}
			}()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		relay.Shutdown(ctx)
		wg.Wait()

		delivered, _ := relay.Stats()
		Expect(delivered).To(Equal(int64(accepted)))
		Expect(sender.count()).To(Equal(accepted))
	})

	It("should refuse mail after shutdown", func() {
		relay := mailer.NewRelay(&fakeSender{}, mailer.Config{}, logger)
		relay.Shutdown(context.Background())

		Expect(relay.Enqueue("a@x.com", "s", "b")).To(MatchError(mailer.ErrRelayStopped))
	})
})
