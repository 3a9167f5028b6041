package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/siddharthaBojanki/greenCart/pkg/queue"
)

var (
	echoRuns atomic.Int32
	failRuns atomic.Int32
)

type echoJob struct {
	Val string `json:"val"`
}

func (j *echoJob) Name() string { return "test.echo" }
func (j *echoJob) Handle(ctx context.Context) error {
	echoRuns.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Name() string { return "test.fail" }
func (j *failJob) Handle(ctx context.Context) error {
	failRuns.Add(1)
	return errors.New("always fails")
}

func init() {
	queue.Register("test.echo", func() queue.Job { return &echoJob{} })
	queue.Register("test.fail", func() queue.Job { return &failJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func waitCount(t *testing.T, c *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if c.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("count = %d, want at least %d", c.Load(), want)
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoRuns.Load()
	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitCount(t, &echoRuns, before+1)
}

type failSink struct {
	recorded atomic.Int32
}

func (s *failSink) RecordFailure(name string, payload []byte, attempts int, err error) {
	s.recorded.Add(1)
}

func TestFailedJobRetriesAndSinks(t *testing.T) {
	queue.SetMaxRetry(2)
	defer queue.SetMaxRetry(3)

	sink := &failSink{}
	queue.SetFailedSink(sink)
	defer queue.SetFailedSink(nil)

	before := failRuns.Load()
	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	// two attempts, then the failure lands in the sink
	waitCount(t, &failRuns, before+2)
	waitCount(t, &sink.recorded, 1)
}

func TestDispatchAfterMemoryDriver(t *testing.T) {
	before := echoRuns.Load()
	if err := queue.DispatchAfter(&echoJob{Val: "later"}, 20*time.Millisecond); err != nil {
		t.Fatalf("delayed dispatch failed: %v", err)
	}
	waitCount(t, &echoRuns, before+1)
}
