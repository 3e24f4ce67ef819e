package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := New(3, 1, time.Minute)

	b.Failure()
	b.Failure()
	assert.True(t, b.Allow(), "still closed below the threshold")

	b.Failure()
	assert.Equal(t, Open, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsFailureStreak(t *testing.T) {
	b := New(3, 1, time.Minute)

	b.Failure()
	b.Failure()
	b.Success()
	b.Failure()
	b.Failure()
	assert.True(t, b.Allow(), "the streak restarted after the success")
}

func TestBreaker_HalfOpenAfterCooldown(t *testing.T) {
	b := New(1, 2, 10*time.Millisecond)

	b.Failure()
	require.False(t, b.Allow())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, HalfOpen, b.State())
	assert.True(t, b.Allow(), "cooldown elapsed, probe allowed")
}

func TestBreaker_ClosesAfterHalfOpenSuccesses(t *testing.T) {
	b := New(1, 2, time.Millisecond)

	b.Failure()
	time.Sleep(5 * time.Millisecond)
	require.True(t, b.Allow())

	b.Success()
	assert.Equal(t, HalfOpen, b.State(), "one success is not enough")
	b.Success()
	assert.Equal(t, Closed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := New(1, 2, time.Millisecond)

	b.Failure()
	time.Sleep(5 * time.Millisecond)
	require.True(t, b.Allow())

	b.Failure()
	assert.Equal(t, Open, b.State())
	assert.False(t, b.Allow())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "half-open", HalfOpen.String())
}
