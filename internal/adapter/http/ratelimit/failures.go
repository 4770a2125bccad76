package ratelimit

import (
	"sync"
	"time"
)

type failureRecord struct {
	count        int
	lastFailure  time.Time
	blockedUntil time.Time
}

// FailureLimiter blocks clients that keep failing authentication. Failures
// older than the window are forgotten.
type FailureLimiter struct {
	mu             sync.Mutex
	failures       map[string]*failureRecord
	maxFailures    int
	windowDuration time.Duration
	blockDuration  time.Duration
	stop           chan struct{}
	stopOnce       sync.Once
}

func NewFailureLimiter(maxFailures int, windowDuration, blockDuration time.Duration) *FailureLimiter {
	l := &FailureLimiter{
		failures:       make(map[string]*failureRecord),
		maxFailures:    maxFailures,
		windowDuration: windowDuration,
		blockDuration:  blockDuration,
		stop:           make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Blocked reports whether clientID is currently blocked and for how long.
func (l *FailureLimiter) Blocked(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.failures[clientID]
	if !ok {
		return false, 0
	}
	if remaining := time.Until(record.blockedUntil); remaining > 0 {
		return true, remaining
	}
	return false, 0
}

// Fail records a failed attempt. It returns true with the block duration
// once the client exceeds the allowed failures.
func (l *FailureLimiter) Fail(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	record, ok := l.failures[clientID]
	if !ok {
		record = &failureRecord{}
		l.failures[clientID] = record
	}

	if now.Sub(record.lastFailure) > l.windowDuration {
		record.count = 0
	}
	record.count++
	record.lastFailure = now

	if record.count > l.maxFailures {
		record.blockedUntil = now.Add(l.blockDuration)
		return true, l.blockDuration
	}
	return false, 0
}

func (l *FailureLimiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, clientID)
}

func (l *FailureLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *FailureLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}

		l.mu.Lock()
		now := time.Now()
		for clientID, record := range l.failures {
			if now.Sub(record.lastFailure) > l.windowDuration*2 && now.After(record.blockedUntil) {
				delete(l.failures, clientID)
			}
		}
		l.mu.Unlock()
	}
}
