package session

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/BananINT/frontend/internal/clock"
)

// ClickGovernor enforces the minimum interval between direct interactions.
// It is a two-state machine, ready or cooling: an attempt while ready is
// accepted and starts the cooldown, an attempt while cooling is silently
// dropped. This is a UX rate limit matched to the authority's own cap, not
// a validation failure.
type ClickGovernor struct {
	lim *rate.Limiter
	clk clock.Clock
}

// NewClickGovernor builds a governor with the given cooldown.
func NewClickGovernor(cooldown time.Duration, clk clock.Clock) *ClickGovernor {
	return &ClickGovernor{
		lim: rate.NewLimiter(rate.Every(cooldown), 1),
		clk: clk,
	}
}

// Allow reports whether a click attempt is accepted. Accepting transitions
// the governor to cooling until the cooldown expires.
func (g *ClickGovernor) Allow() bool {
	return g.lim.AllowN(g.clk.Now(), 1)
}
