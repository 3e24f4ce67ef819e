// Package keyring holds the API credentials a session signs with. A ring
// may contain several keys for rate-limit headroom; rotation moves to the
// next enabled key when the venue rejects the current one for nonce or
// throttling reasons.
package keyring

import (
	"sync"

	"github.com/Gsuz/ccxt/pkg/core"
)

// Ring is a thread-safe credential carousel.
type Ring struct {
	mu      sync.RWMutex
	keys    []core.Credentials
	current int
}

// New creates a ring from the given credentials, skipping incomplete ones
// (missing key or secret).
func New(keys ...core.Credentials) *Ring {
	r := &Ring{}
	for _, k := range keys {
		if k.Complete() {
			r.keys = append(r.keys, k)
		}
	}
	return r
}

// Empty reports whether the ring holds no usable credentials.
func (r *Ring) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys) == 0
}

// Current returns the active credentials. The second return is false when
// the ring is empty.
func (r *Ring) Current() (core.Credentials, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.keys) == 0 {
		return core.Credentials{}, false
	}
	return r.keys[r.current], true
}

// Rotate advances to the next credentials and returns them.
func (r *Ring) Rotate() (core.Credentials, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.keys) == 0 {
		return core.Credentials{}, false
	}
	r.current = (r.current + 1) % len(r.keys)
	return r.keys[r.current], true
}

// Len returns the number of usable credentials.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}
