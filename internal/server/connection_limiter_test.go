package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionLimits_PerIPCap(t *testing.T) {
	limits := NewConnectionLimits(2, 1000, 1000)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.1")
	require.True(t, ok)

	ok, reason := limits.Acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, limitReasonIP, reason)

	// Another IP is unaffected.
	ok, _ = limits.Acquire("10.0.0.2")
	assert.True(t, ok)
}

func TestConnectionLimits_ReleaseFreesSlot(t *testing.T) {
	limits := NewConnectionLimits(1, 1000, 1000)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)

	ok, _ = limits.Acquire("10.0.0.1")
	require.False(t, ok)

	limits.Release("10.0.0.1")

	ok, _ = limits.Acquire("10.0.0.1")
	assert.True(t, ok)
}

func TestConnectionLimits_RateLimit(t *testing.T) {
	limits := NewConnectionLimits(100, 1, 2)

	ok, _ := limits.Acquire("10.0.0.1")
	require.True(t, ok)
	ok, _ = limits.Acquire("10.0.0.2")
	require.True(t, ok)

	// Burst exhausted; refill is one token per second.
	ok, reason := limits.Acquire("10.0.0.3")
	assert.False(t, ok)
	assert.Equal(t, limitReasonRate, reason)
}

func TestConnectionLimits_ZeroPerIPMeansUnlimited(t *testing.T) {
	limits := NewConnectionLimits(0, 1000, 1000)

	for range 50 {
		ok, _ := limits.Acquire("10.0.0.1")
		require.True(t, ok)
	}
}

func TestConnectionLimits_ReleaseUnknownIPIsSafe(t *testing.T) {
	limits := NewConnectionLimits(1, 1000, 1000)
	limits.Release("10.0.0.9")

	ok, _ := limits.Acquire("10.0.0.9")
	assert.True(t, ok)
}
