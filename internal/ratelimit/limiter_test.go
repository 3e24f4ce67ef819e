package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_WaitCostWithinBudget(t *testing.T) {
	l := New(100, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, l.WaitCost(ctx, 40))
	require.NoError(t, l.WaitCost(ctx, 60), "a cold bucket holds the whole budget")
}

func TestLimiter_CostBeyondBudgetFailsFast(t *testing.T) {
	l := New(100, time.Minute)

	err := l.WaitCost(context.Background(), 101)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds rate limit budget")
}

func TestLimiter_ZeroCostCountsAsOne(t *testing.T) {
	l := New(10, time.Minute)
	require.NoError(t, l.WaitCost(context.Background(), 0))
	assert.Equal(t, int64(1), l.Stats().ConsumedCost)
}

func TestLimiter_AllowCostDrains(t *testing.T) {
	l := New(10, time.Minute)

	assert.True(t, l.AllowCost(10))
	assert.False(t, l.AllowCost(1), "budget exhausted until refill")
}

func TestLimiter_CanceledContext(t *testing.T) {
	l := New(10, time.Minute)
	require.True(t, l.AllowCost(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.WaitCost(ctx, 5))
}

func TestLimiter_Stats(t *testing.T) {
	l := New(100, time.Minute)

	require.NoError(t, l.WaitCost(context.Background(), 5))
	require.True(t, l.AllowCost(20))

	stats := l.Stats()
	assert.Equal(t, int64(2), stats.Requests)
	assert.Equal(t, int64(25), stats.ConsumedCost)
}
