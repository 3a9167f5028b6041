// Package queue processes background jobs for the storefront, such as
// sending a welcome mail after registration.
//
//	queue.Register("mail.welcome", func() queue.Job { return &WelcomeMailJob{} })
//	queue.Dispatch(&WelcomeMailJob{Email: "jane@example.com"})
//	queue.StartWorkers(ctx, 2)
//
// Jobs are serialised as JSON envelopes so the Redis driver can hand them to
// a worker in another process. The in-memory driver keeps everything in one
// process for development and tests.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
)

// Job is a unit of background work. Name must be stable across releases
// because it is stored in the serialised envelope.
type Job interface {
	Name() string
	Handle(ctx context.Context) error
}

// Driver is the queue transport.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// DelayedDriver is implemented by drivers that can schedule jobs.
type DelayedDriver interface {
	Driver
	PushDelayed(payload []byte, delay time.Duration) error
}

// FailedSink receives jobs that exhausted their retries. The server wires a
// Mongo-backed sink; tests usually leave it nil.
type FailedSink interface {
	RecordFailure(name string, payload []byte, attempts int, err error)
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager owns the driver, the job registry and the retry policy.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   FailedSink
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	driver:   NewMemoryDriver(),
	maxRetry: 3,
}

// SetDriver swaps the transport. Call before StartWorkers.
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetFailedSink installs the destination for exhausted jobs.
func SetFailedSink(s FailedSink) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.failed = s
}

// SetMaxRetry sets the attempt limit per job.
func SetMaxRetry(n int) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	if n > 0 {
		defaultManager.maxRetry = n
	}
}

// Register makes a job type reconstructable from its envelope name. Call
// once at boot for every job type.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// Dispatch pushes job onto the queue.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

// DispatchAfter schedules job to run after delay. The Redis driver uses a
// sorted set; other drivers fall back to a sleeping goroutine.
func DispatchAfter(job Job, delay time.Duration) error {
	defaultManager.mu.RLock()
	d := defaultManager.driver
	defaultManager.mu.RUnlock()

	if dd, ok := d.(DelayedDriver); ok {
		env, err := seal(job)
		if err != nil {
			return err
		}
		return dd.PushDelayed(env, delay)
	}

	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "job", job.Name(), "error", err)
		}
	}()
	return nil
}

func seal(job Job) ([]byte, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal job %s: %w", job.Name(), err)
	}
	env, err := json.Marshal(envelope{Type: job.Name(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("queue: marshal envelope: %w", err)
	}
	return env, nil
}

func (m *Manager) push(job Job) error {
	env, err := seal(job)
	if err != nil {
		return err
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers launches n workers that drain the queue until ctx is
// cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.mu.RLock()
		d := m.driver
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}

		m.process(ctx, raw)
	}
}

func (m *Manager) process(ctx context.Context, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		metrics.QueueJobsProcessed.WithLabelValues("invalid").Inc()
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		metrics.QueueJobsProcessed.WithLabelValues("unregistered").Inc()
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		metrics.QueueJobsProcessed.WithLabelValues("invalid").Inc()
		return
	}

	m.runWithRetry(ctx, job, env.Payload)
}

func (m *Manager) runWithRetry(ctx context.Context, job Job, payload []byte) {
	m.mu.RLock()
	maxRetry := m.maxRetry
	sink := m.failed
	m.mu.RUnlock()

	var lastErr error
	for attempt := 1; attempt <= maxRetry; attempt++ {
		if err := job.Handle(ctx); err != nil {
			lastErr = err
			logger.Warn("queue: job failed, retrying",
				"job", job.Name(), "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		metrics.QueueJobsProcessed.WithLabelValues("ok").Inc()
		logger.Info("queue: job processed", "job", job.Name())
		return
	}

	metrics.QueueJobsProcessed.WithLabelValues("failed").Inc()
	logger.Error("queue: job exhausted retries", "job", job.Name(), "error", lastErr)
	if sink != nil {
		sink.RecordFailure(job.Name(), payload, maxRetry, lastErr)
	}
}
