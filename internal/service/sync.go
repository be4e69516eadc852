package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type syncJob struct {
	op string
	fn func(ctx context.Context) error
}

// RemoteSync forwards mutations to the remote catalog in the background.
// Results are logged and observed, never returned to the caller.
type RemoteSync struct {
	inbox    chan syncJob
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer

	startOnce sync.Once
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

func NewRemoteSync(buffer int, timeout time.Duration, logger *slog.Logger, observer Observer) *RemoteSync {
	if buffer <= 0 {
		buffer = 64
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &RemoteSync{
		inbox:    make(chan syncJob, buffer),
		timeout:  timeout,
		logger:   logger,
		observer: observer,
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine. Calling it more than once has no effect.
func (rs *RemoteSync) Start() {
	rs.startOnce.Do(func() {
		go func() {
			defer close(rs.done)
			for job := range rs.inbox {
				rs.run(job)
			}
		}()
	})
}

func (rs *RemoteSync) run(job syncJob) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.timeout)
	defer cancel()
	start := time.Now()
	err := job.fn(ctx)
	rs.observer.ObserveRemote(job.op, time.Since(start), err)
	if err != nil {
		rs.logger.Warn("remote catalog sync failed", slog.String("op", job.op), slog.Any("error", err))
	}
}

// Enqueue schedules fn without blocking. Jobs are dropped when the inbox is full or closed.
func (rs *RemoteSync) Enqueue(op string, fn func(ctx context.Context) error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if rs.closed {
		rs.observer.ObserveSyncDropped(op)
		return
	}
	select {
	case rs.inbox <- syncJob{op: op, fn: fn}:
	default:
		rs.observer.ObserveSyncDropped(op)
		rs.logger.Warn("remote sync inbox full, dropping job", slog.String("op", op))
	}
}

// Close stops accepting jobs and waits until the queued ones have run.
func (rs *RemoteSync) Close() {
	rs.closeOnce.Do(func() {
		rs.mu.Lock()
		rs.closed = true
		close(rs.inbox)
		rs.mu.Unlock()
	})
	rs.Start()
	<-rs.done
}
