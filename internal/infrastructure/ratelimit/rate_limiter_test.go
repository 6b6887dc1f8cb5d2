package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowEnforcesBurstPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	ok, _ := rl.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, wait := rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok)

	fixed = fixed.Add(time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestCleanupDropsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }
	rl.Allow("a")

	fixed = fixed.Add(30 * time.Minute)
	rl.Allow("b")

	fixed = fixed.Add(45 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup(time.Hour))
	assert.Len(t, rl.visitors, 1)
}
