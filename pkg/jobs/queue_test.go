package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Type: "export.xlsx"}))

	select {
	case job := <-done:
		assert.Equal(t, "j1", job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{}, 1)

	q := NewQueue("test", func(_ context.Context, job Job) error {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n < 2 {
			return errors.New("boom")
		}
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 1, RetryDelay: 10 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Type: "export.pdf"}))

	select {
	case <-done:
		mu.Lock()
		assert.Equal(t, 2, attempts)
		mu.Unlock()
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})

	err := q.Enqueue(Job{ID: "j1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestStopWaitsForWorkers(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue("test", func(_ context.Context, _ Job) error {
		<-release
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{ID: "j1"}))

	time.Sleep(20 * time.Millisecond)
	close(release)
	q.Stop()

	err := q.Enqueue(Job{ID: "j2"})
	require.Error(t, err)
}
