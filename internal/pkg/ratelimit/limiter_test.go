package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(limit int) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limit, DefaultWindow)
	l.now = clock.now
	return l, clock
}

func TestAdmitWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(10)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Admit("ip1"), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Admit("ip1"), "11th request in the window should be rejected")
	assert.False(t, l.Admit("ip1"))
}

func TestWindowResetsAfterExpiry(t *testing.T) {
	l, clock := newTestLimiter(10)

	for i := 0; i < 11; i++ {
		l.Admit("ip1")
	}
	assert.False(t, l.Admit("ip1"))

	clock.advance(61 * time.Second)
	assert.True(t, l.Admit("ip1"), "first request after window expiry should reset and admit")
}

func TestRejectedBurstDoesNotExtendWindow(t *testing.T) {
	l, clock := newTestLimiter(10)

	for i := 0; i < 10; i++ {
		l.Admit("ip1")
	}

	// Keep hammering while rejected; the window start must not move.
	for i := 0; i < 5; i++ {
		clock.advance(10 * time.Second)
		assert.False(t, l.Admit("ip1"))
	}

	// 61s after the original window start the limiter must reset even
	// though rejections kept arriving.
	clock.advance(11 * time.Second)
	assert.True(t, l.Admit("ip1"))
}

func TestClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(10)

	for i := 0; i < 11; i++ {
		l.Admit("ip1")
	}
	assert.False(t, l.Admit("ip1"))
	assert.True(t, l.Admit("ip2"), "ip2 must be unaffected by ip1's count")
}

func TestConcurrentAdmitNeverOverAdmits(t *testing.T) {
	l, _ := newTestLimiter(10)

	const requests = 100
	var wg sync.WaitGroup
	results := make(chan bool, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- l.Admit("ip1")
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 10, admitted)
}
