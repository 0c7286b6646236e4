package mailer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull    = errors.New("mail queue full")
	ErrRelayStopped = errors.New("mail relay stopped")
)

type Envelope struct {
	To      string
	Subject string
	HTML    string
}

// Sender performs one delivery attempt.
type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

type Worker struct {
	ID         int
	WorkerPool chan chan Envelope
	JobChannel chan Envelope
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Envelope, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Envelope),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, deliver func(Envelope)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				w.Logger.Debug("mail worker shutting down", "worker_id", w.ID)
				return
			}

			select {
			case env := <-w.JobChannel:
				w.Logger.Debug("mail worker delivering", "worker_id", w.ID, "to", env.To)
				deliver(env)
			case <-ctx.Done():
				w.Logger.Debug("mail worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Relay hands persisted notifications to SMTP in the background. Delivery is
// best-effort: failures are logged and never reported back to the caller.
type Relay struct {
	sender      Sender
	logger      *slog.Logger
	sendTimeout time.Duration

	jobQueue   chan Envelope
	workerPool chan chan Envelope
	maxWorkers int
	pending    sync.WaitGroup

	// mu orders intake against Shutdown so pending.Add never races pending.Wait.
	mu      sync.Mutex
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	delivered atomic.Int64
	failed    atomic.Int64
}

func NewRelay(sender Sender, cfg Config, logger *slog.Logger) *Relay {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := cfg.Workers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 15 * time.Second
	}

	r := &Relay{
		sender:      sender,
		logger:      logger,
		sendTimeout: sendTimeout,
		maxWorkers:  maxWorkers,
		jobQueue:    make(chan Envelope, queueSize),
		workerPool:  make(chan chan Envelope, maxWorkers),
		ctx:         ctx,
		cancel:      cancel,
	}

	r.start()

	return r
}

func (r *Relay) start() {
	r.once.Do(func() {
		for i := 0; i < r.maxWorkers; i++ {
			worker := NewWorker(i, r.workerPool, r.logger)
			worker.Start(r.ctx, &r.wg, r.deliver)
		}

		r.wg.Add(1)
		go r.dispatch()

		r.logger.Info("mail relay worker pool started",
			"max_workers", r.maxWorkers,
			"queue_size", cap(r.jobQueue))
	})
}

func (r *Relay) dispatch() {
	defer r.wg.Done()

	for {
		select {
		case env := <-r.jobQueue:
			select {
			case jobChannel := <-r.workerPool:
				select {
				case jobChannel <- env:
				case <-r.ctx.Done():
					r.pending.Done()
					return
				}
			case <-r.ctx.Done():
				r.pending.Done()
				return
			}
		case <-r.ctx.Done():
			r.logger.Info("mail dispatcher shutting down")
			return
		}
	}
}

// Enqueue never blocks; a full queue rejects the message.
func (r *Relay) Enqueue(to, subject, html string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrRelayStopped
	}

	r.pending.Add(1)
	select {
	case r.jobQueue <- Envelope{To: to, Subject: subject, HTML: html}:
		return nil
	default:
		r.pending.Done()
		r.logger.Warn("mail queue full, dropping message", "to", to, "queue_capacity", cap(r.jobQueue))
		return ErrQueueFull
	}
}

func (r *Relay) deliver(env Envelope) {
	defer r.pending.Done()

	ctx, cancel := context.WithTimeout(r.ctx, r.sendTimeout)
	defer cancel()

	if err := r.sender.Send(ctx, env); err != nil {
		r.failed.Add(1)
		r.logger.Error("email delivery failed", "to", env.To, "subject", env.Subject, "error", err)
		return
	}
	r.delivered.Add(1)
	r.logger.Info("email sent", "to", env.To)
}

// Stats returns delivered and failed counts since start.
func (r *Relay) Stats() (delivered, failed int64) {
	return r.delivered.Load(), r.failed.Load()
}

// Shutdown stops intake, waits for queued mail until ctx expires, then stops the workers.
func (r *Relay) Shutdown(ctx context.Context) {
	r.logger.Info("shutting down mail relay")
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		r.logger.Warn("mail relay shutdown timeout, pending messages dropped", "queued", len(r.jobQueue))
	}

	r.cancel()
	r.wg.Wait()
	r.logger.Info("mail relay shutdown complete")
}
