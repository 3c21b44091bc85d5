package cooldown

import (
	"sync"
	"time"
)

// Eligible reports whether at least window has passed since last.
func Eligible(last, now time.Time, window time.Duration) bool {
	return now.Sub(last) >= window
}

// Key joins a guild scope with an optional user.
func Key(guildID string, userID ...string) string {
	if len(userID) == 0 {
		return guildID
	}
	return guildID + ":" + userID[0]
}

// Tracker remembers the last accepted action per key.
type Tracker struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window: window,
		last:   make(map[string]time.Time),
	}
}

func (t *Tracker) Window() time.Duration {
	return t.window
}

// Ready reports whether key is past its cooldown. Unknown keys are ready.
func (t *Tracker) Ready(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readyLocked(key, now)
}

func (t *Tracker) Stamp(key string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[key] = now
}

// TryAcquire stamps key and returns true when it was ready.
func (t *Tracker) TryAcquire(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.readyLocked(key, now) {
		return false
	}
	t.last[key] = now
	return true
}

// Prune drops entries whose window has elapsed and returns how many were
// removed. A pruned key is ready either way.
func (t *Tracker) Prune(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, last := range t.last {
		if Eligible(last, now, t.window) {
			delete(t.last, key)
			removed++
		}
	}
	return removed
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}

func (t *Tracker) readyLocked(key string, now time.Time) bool {
	last, ok := t.last[key]
	if !ok {
		return true
	}
	return Eligible(last, now, t.window)
}
