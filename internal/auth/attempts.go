package auth

import (
	"sync"
	"time"
)

// AttemptLimiter tracks failed attempts per key (login identifier) and locks
// the key out once the limit is reached, until the window expires. Keys reset
// on success.
type AttemptLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]attemptEntry
}

type attemptEntry struct {
	failures int
	resetAt  time.Time
}

func NewAttemptLimiter(limit int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]attemptEntry),
	}
}

func (l *AttemptLimiter) IsLimited(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return false
	}
	if time.Now().After(e.resetAt) {
		delete(l.entries, key)
		return false
	}
	return e.failures >= l.limit
}

func (l *AttemptLimiter) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = attemptEntry{resetAt: now.Add(l.window)}
	}
	e.failures++
	l.entries[key] = e
}

func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
