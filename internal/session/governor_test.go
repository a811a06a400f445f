package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestGovernorCooldown(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	g := NewClickGovernor(100*time.Millisecond, clk)

	assert.True(t, g.Allow(), "first attempt accepted")
	assert.False(t, g.Allow(), "attempt while cooling dropped")

	clk.Advance(50 * time.Millisecond)
	assert.False(t, g.Allow(), "still cooling")

	clk.Advance(50 * time.Millisecond)
	assert.True(t, g.Allow(), "ready again after the cooldown")
}

func TestGovernorCapsRatePerSecond(t *testing.T) {
	clk := newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	g := NewClickGovernor(100*time.Millisecond, clk)

	accepted := 0
	for i := 0; i < 100; i++ {
		if g.Allow() {
			accepted++
		}
		clk.Advance(10 * time.Millisecond)
	}
	// 100 attempts over one second, one accepted per 100ms window.
	assert.LessOrEqual(t, accepted, 11)
	assert.GreaterOrEqual(t, accepted, 10)
}
