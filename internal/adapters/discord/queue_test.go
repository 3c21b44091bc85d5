package discord

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestEventQueue_RunsInSubmissionOrder(t *testing.T) {
	q := NewEventQueue(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		q.Submit(func(ctx context.Context) { got = append(got, i) })
	}
	q.Submit(func(ctx context.Context) { close(done) })

	go q.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("expected event %d at position %d, got %v", i, i, got)
		}
	}
}

func TestEventQueue_SingleConsumer(t *testing.T) {
	q := NewEventQueue(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go q.Submit(func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			running++
			maxSeen = max(maxSeen, running)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected one event at a time, saw %d", maxSeen)
	}
}

func TestEventQueue_SubmitAfterStop(t *testing.T) {
	q := NewEventQueue(1)
	ctx, cancel := context.WithCancel(context.Background())

	go q.Run(ctx)
	cancel()
	<-q.Done()

	if q.Submit(func(ctx context.Context) {}) {
		t.Error("expected Submit to refuse events after Run returned")
	}
}

func TestEventQueue_RecoversFromPanic(t *testing.T) {
	q := NewEventQueue(2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	done := make(chan struct{})
	q.Submit(func(ctx context.Context) { panic("boom") })
	q.Submit(func(ctx context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queue stopped after a panicking event")
	}
}

func TestEventQueue_CallWaitsForResult(t *testing.T) {
	q := NewEventQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	ran := false
	if err := q.Call(context.Background(), func(ctx context.Context) { ran = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected event to have run before Call returned")
	}
}

func TestEventQueue_CallAfterStop(t *testing.T) {
	q := NewEventQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	go q.Run(ctx)
	cancel()
	<-q.Done()

	err := q.Call(context.Background(), func(ctx context.Context) {})
	if !errors.Is(err, ErrQueueStopped) {
		t.Errorf("expected ErrQueueStopped, got %v", err)
	}
}

func TestEventQueue_CallHonoursCallerContext(t *testing.T) {
	q := NewEventQueue(2)
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	go q.Run(runCtx)

	release := make(chan struct{})
	defer close(release)
	q.Submit(func(ctx context.Context) { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := q.Call(ctx, func(ctx context.Context) {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
