// Package circuitbreaker guards the transport against hammering a venue
// that is already failing. After enough consecutive failures the breaker
// opens and calls fail fast until a cooldown passes; a half-open probe then
// decides whether to close again.
package circuitbreaker

import (
	"sync"
	"time"
)

// State is the breaker's position.
type State int

// Breaker states.
const (
	// Closed passes every call through.
	Closed State = iota
	// Open fails every call fast.
	Open
	// HalfOpen passes probe calls through after the cooldown.
	HalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker is a consecutive-failure circuit breaker.
type Breaker struct {
	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	failThreshold int
	succThreshold int
	cooldown      time.Duration
	openedAt      time.Time
}

// New creates a breaker that opens after failThreshold consecutive
// failures, stays open for cooldown, and closes again after succThreshold
// consecutive half-open successes.
func New(failThreshold, succThreshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		failThreshold: failThreshold,
		succThreshold: succThreshold,
		cooldown:      cooldown,
	}
}

// Allow reports whether a call may proceed right now.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return true
	case Open:
		if time.Since(b.openedAt) >= b.cooldown {
			b.state = HalfOpen
			b.successes = 0
			return true
		}
		return false
	default: // HalfOpen
		return true
	}
}

// Success records a successful call.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case HalfOpen:
		b.successes++
		if b.successes >= b.succThreshold {
			b.state = Closed
			b.failures = 0
		}
	case Closed:
		b.failures = 0
	}
}

// Failure records a failed call.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case HalfOpen:
		b.trip()
	case Closed:
		b.failures++
		if b.failures >= b.failThreshold {
			b.trip()
		}
	}
}

func (b *Breaker) trip() {
	b.state = Open
	b.openedAt = time.Now()
	b.failures = 0
	b.successes = 0
}

// State returns the breaker's current position.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Open && time.Since(b.openedAt) >= b.cooldown {
		return HalfOpen
	}
	return b.state
}
