// Package ratelimit fronts the venue's weighted request budget with a local
// token bucket. Each request consumes its computed cost before dispatch, so
// a burst of heavy calls (full-market tickers, deep order books) drains the
// budget proportionally faster than light ones.
package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a cost-weighted token bucket. The bucket holds the full period
// budget so a cold client can spend it at once, then refills continuously.
type Limiter struct {
	bucket *rate.Limiter
	budget int

	waited   atomic.Int64
	consumed atomic.Int64
}

// New creates a Limiter with the given cost budget per period.
func New(budget int, period time.Duration) *Limiter {
	perSecond := float64(budget) / period.Seconds()
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), budget),
		budget: budget,
	}
}

// WaitCost blocks until cost tokens are available or the context ends. A
// cost above the whole budget can never be satisfied and fails immediately.
func (l *Limiter) WaitCost(ctx context.Context, cost int) error {
	if cost <= 0 {
		cost = 1
	}
	if cost > l.budget {
		return fmt.Errorf("request cost %d exceeds rate limit budget %d", cost, l.budget)
	}
	if err := l.bucket.WaitN(ctx, cost); err != nil {
		return err
	}
	l.waited.Add(1)
	l.consumed.Add(int64(cost))
	return nil
}

// AllowCost reports whether cost tokens are available right now, consuming
// them when they are.
func (l *Limiter) AllowCost(cost int) bool {
	if cost <= 0 {
		cost = 1
	}
	if l.bucket.AllowN(time.Now(), cost) {
		l.waited.Add(1)
		l.consumed.Add(int64(cost))
		return true
	}
	return false
}

// Snapshot is a point-in-time capture of limiter statistics.
type Snapshot struct {
	// Requests is the number of WaitCost/AllowCost grants.
	Requests int64
	// ConsumedCost is the total weight consumed.
	ConsumedCost int64
}

// Stats returns the current limiter statistics.
func (l *Limiter) Stats() Snapshot {
	return Snapshot{
		Requests:     l.waited.Load(),
		ConsumedCost: l.consumed.Load(),
	}
}
