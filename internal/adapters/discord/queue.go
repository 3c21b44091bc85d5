package discord

import (
	"context"
	"errors"
	"log/slog"

	"dollhouse-lurker/internal/adapters/metrics"
)

var ErrQueueStopped = errors.New("event queue stopped")

// Event is a unit of work run on the queue's consumer goroutine.
type Event func(ctx context.Context)

// EventQueue runs document mutations on a single goroutine so two writers
// never interleave. Outbound Discord calls stay off the queue.
type EventQueue struct {
	events  chan Event
	stopped chan struct{}
}

func NewEventQueue(size int) *EventQueue {
	if size < 1 {
		size = 1
	}
	return &EventQueue{
		events:  make(chan Event, size),
		stopped: make(chan struct{}),
	}
}

// Submit blocks until the event is queued. It returns false once the
// consumer has stopped.
func (q *EventQueue) Submit(ev Event) bool {
	select {
	case <-q.stopped:
		return false
	default:
	}

	select {
	case q.events <- ev:
		metrics.EventQueueDepth.Set(float64(len(q.events)))
		return true
	case <-q.stopped:
		return false
	}
}

// Run consumes events until ctx is cancelled. An event already running
// is allowed to finish.
func (q *EventQueue) Run(ctx context.Context) {
	defer close(q.stopped)
	slog.Info("Event queue started", "capacity", cap(q.events))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Event queue stopped", "dropped", len(q.events))
			return
		case ev := <-q.events:
			metrics.EventQueueDepth.Set(float64(len(q.events)))
			q.run(ctx, ev)
		}
	}
}

func (q *EventQueue) run(ctx context.Context, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "panic", r)
		}
	}()
	ev(ctx)
}

// Call runs ev on the consumer goroutine and waits for it to return.
func (q *EventQueue) Call(ctx context.Context, ev Event) error {
	done := make(chan struct{})
	queued := q.Submit(func(ctx context.Context) {
		defer close(done)
		ev(ctx)
	})
	if !queued {
		return ErrQueueStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.stopped:
		// Run may have returned with the event still buffered.
		select {
		case <-done:
			return nil
		default:
			return ErrQueueStopped
		}
	}
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

// Done is closed once Run has returned.
func (q *EventQueue) Done() <-chan struct{} {
	return q.stopped
}
