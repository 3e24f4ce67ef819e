package signer

import (
	"sync/atomic"
	"time"
)

// Nonce produces the strictly increasing values signed requests carry to
// prevent replay. Values are the current time in milliseconds, adjusted by
// a measured clock-skew offset and forced monotonic: two calls in the same
// millisecond still yield increasing values. The offset is written once by
// an optional time-sync step and read thereafter.
type Nonce struct {
	last   atomic.Int64
	offset atomic.Int64
}

// Next returns the next nonce.
func (n *Nonce) Next() int64 {
	now := time.Now().UnixMilli() + n.offset.Load()
	for {
		last := n.last.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if n.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Sync records the offset between the venue's clock and the local clock so
// subsequent nonces track server time. Venues reject timestamps outside
// their receive window, so a skewed local clock makes every signed call
// fail until synced.
func (n *Nonce) Sync(serverMillis int64) {
	n.offset.Store(serverMillis - time.Now().UnixMilli())
}

// Offset returns the measured clock-skew offset in milliseconds.
func (n *Nonce) Offset() int64 {
	return n.offset.Load()
}
