package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// TenantLimiter applies a token bucket per tenant. A zero rate disables it.
type TenantLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewTenantLimiter(perSecond float64, burst int) *TenantLimiter {
	if burst < 1 {
		burst = 1
	}
	return &TenantLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *TenantLimiter) Allow(tenantID int64) bool {
	if l == nil || l.limit <= 0 {
		return true
	}
	return l.limiter(tenantID).Allow()
}

func (l *TenantLimiter) limiter(tenantID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[tenantID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[tenantID] = lim
	}
	return lim
}

// TenantLock serializes work per tenant.
type TenantLock struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewTenantLock() *TenantLock {
	return &TenantLock{locks: make(map[int64]*sync.Mutex)}
}

// Lock blocks until tenantID is free and returns the matching unlock.
// A nil TenantLock does not lock.
func (l *TenantLock) Lock(tenantID int64) func() {
	if l == nil {
		return func() {}
	}

	l.mu.Lock()
	m, ok := l.locks[tenantID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tenantID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
