package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesAndDrains(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	q := NewQueue[int]("test", func(_ context.Context, job Job[int]) error {
		mu.Lock()
		seen = append(seen, job.Payload)
		mu.Unlock()
		return nil
	}, QueueConfig{Workers: 2, BufferSize: 16})

	q.Start(context.Background())
	for i := 0; i < 10; i++ {
		_, err := q.Enqueue(i)
		require.NoError(t, err)
	}
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 10)
}

func TestQueueRejectsWhenNotRunning(t *testing.T) {
	q := NewQueue[string]("idle", func(context.Context, Job[string]) error { return nil }, QueueConfig{})
	_, err := q.Enqueue("x")
	assert.ErrorIs(t, err, ErrNotRunning)

	q.Start(context.Background())
	assert.True(t, q.Running())
	q.Stop()
	assert.False(t, q.Running())

	_, err = q.Enqueue("y")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts atomic.Int32
	done := make(chan struct{})
	q := NewQueue[string]("retry", func(_ context.Context, job Job[string]) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()
	_, err := q.Enqueue("audit")
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(3), attempts.Load())
}
