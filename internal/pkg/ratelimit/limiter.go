package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const DefaultWindow = 60 * time.Second

// Limiter admits requests per client within a fixed counting window. The
// window resets lazily on the first request after expiry; rejected requests
// still update the count but never move the window start, so a rejected
// burst cannot extend the window.
//
// Client entries live in a go-cache store whose janitor sweeps entries idle
// for two windows, which keeps the map bounded by recently-active clients.
type Limiter struct {
	limit   int
	window  time.Duration
	clients *cache.Cache

	now func() time.Time // overridable in tests
}

// clientWindow is the per-client state. Its mutex makes the
// check-then-update on a window atomic; different clients never contend.
type clientWindow struct {
	mu    sync.Mutex
	start time.Time
	count int
}

func New(limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		limit:   limit,
		window:  window,
		clients: cache.New(2*window, 10*time.Minute),
		now:     time.Now,
	}
}

// Admit reports whether the client's request is allowed in the current
// window.
func (l *Limiter) Admit(clientId string) bool {
	for {
		if x, found := l.clients.Get(clientId); found {
			w := x.(*clientWindow)

			w.mu.Lock()
			now := l.now()
			if now.Sub(w.start) > l.window {
				w.start = now
				w.count = 1
			} else {
				w.count++
			}
			allowed := w.count <= l.limit
			w.mu.Unlock()

			// Refresh the cache TTL so active clients never lose their
			// window to the janitor mid-flight.
			l.clients.Set(clientId, w, cache.DefaultExpiration)
			return allowed
		}

		w := &clientWindow{start: l.now(), count: 1}
		if err := l.clients.Add(clientId, w, cache.DefaultExpiration); err == nil {
			return l.limit >= 1
		}
		// Lost the insert race with another request from the same client;
		// retry against the stored window.
	}
}
