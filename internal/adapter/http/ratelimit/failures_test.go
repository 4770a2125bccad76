package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestFailureLimiter(t *testing.T, maxFailures int, window, block time.Duration) *FailureLimiter {
	t.Helper()
	l := NewFailureLimiter(maxFailures, window, block)
	t.Cleanup(l.Close)
	return l
}

func TestFailureLimiter_UnknownClientIsNotBlocked(t *testing.T) {
	l := newTestFailureLimiter(t, 3, time.Minute, 5*time.Minute)

	blocked, remaining := l.Blocked("client1")

	assert.False(t, blocked)
	assert.Equal(t, time.Duration(0), remaining)
}

func TestFailureLimiter_BlocksAfterMaxFailures(t *testing.T) {
	l := newTestFailureLimiter(t, 3, time.Minute, 5*time.Minute)

	for range 3 {
		blocked, _ := l.Fail("client1")
		assert.False(t, blocked)
	}

	blocked, duration := l.Fail("client1")
	assert.True(t, blocked)
	assert.Equal(t, 5*time.Minute, duration)

	blocked, remaining := l.Blocked("client1")
	assert.True(t, blocked)
	assert.Greater(t, remaining, 4*time.Minute)
}

func TestFailureLimiter_ClientsAreIndependent(t *testing.T) {
	l := newTestFailureLimiter(t, 1, time.Minute, 5*time.Minute)

	l.Fail("client1")
	l.Fail("client1")

	blocked, _ := l.Blocked("client2")
	assert.False(t, blocked)
}

func TestFailureLimiter_WindowExpires(t *testing.T) {
	l := newTestFailureLimiter(t, 2, 50*time.Millisecond, 5*time.Minute)

	l.Fail("client1")
	l.Fail("client1")
	time.Sleep(100 * time.Millisecond)

	blocked, _ := l.Fail("client1")
	assert.False(t, blocked)
}

func TestFailureLimiter_Reset(t *testing.T) {
	l := newTestFailureLimiter(t, 1, time.Minute, 5*time.Minute)

	l.Fail("client1")
	l.Fail("client1")
	l.Reset("client1")

	blocked, _ := l.Blocked("client1")
	assert.False(t, blocked)
}

func TestFailureLimiter_CloseIsIdempotent(t *testing.T) {
	l := NewFailureLimiter(1, time.Minute, time.Minute)
	l.Close()
	l.Close()
}
