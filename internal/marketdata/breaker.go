package marketdata

import (
	"errors"
	"sync"
	"time"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
)

// breakerState represents the state of the upstream breaker.
type breakerState string

const (
	breakerClosed   breakerState = "CLOSED"
	breakerOpen     breakerState = "OPEN"
	breakerHalfOpen breakerState = "HALF_OPEN"
)

// errBreakerOpen is returned while the breaker is rejecting requests.
var errBreakerOpen = errors.New("upstream breaker is open")

// upstreamBreaker trips after consecutive transport failures so a dead
// data API fails fast for the rest of the sweep instead of spending a
// full retry cycle on every candidate. Provider-level answers (rate
// limits, unknown symbols) are not outages and never trip it.
type upstreamBreaker struct {
	threshold int
	cooldown  time.Duration

	mu          sync.Mutex
	state       breakerState
	failures    int
	lastFailure time.Time
}

func newUpstreamBreaker(threshold int, cooldown time.Duration) *upstreamBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &upstreamBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		state:     breakerClosed,
	}
}

// Allow reports whether a request may proceed. While open, one probe
// request is let through after the cooldown.
func (b *upstreamBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerOpen {
		if time.Since(b.lastFailure) < b.cooldown {
			return errBreakerOpen
		}
		b.state = breakerHalfOpen
	}
	return nil
}

// Record classifies the outcome of a request. Only transport failures
// count against the breaker; any other outcome means the upstream is
// reachable and closes it.
func (b *upstreamBreaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil && swarmerrors.Is(err, swarmerrors.ErrTransport) {
		b.failures++
		b.lastFailure = time.Now()
		if b.state == breakerHalfOpen || b.failures >= b.threshold {
			b.state = breakerOpen
		}
		return
	}

	b.state = breakerClosed
	b.failures = 0
}

// State returns the current breaker state.
func (b *upstreamBreaker) State() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
