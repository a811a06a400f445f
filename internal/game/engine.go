package game

import (
	"sort"
	"sync"
	"time"
)

// Engine guards the live State and applies mutations. Optimistic edits
// (clicks, passive ticks, offline accrual) only ever add; spending is never
// applied locally, so Bananas cannot go negative and TotalBananasEarned
// stays ahead of the spendable balance. Server responses win wholesale.
type Engine struct {
	mu       sync.Mutex
	st       State
	upgrades map[string]Upgrade
	pending  int
}

// NewEngine wraps an initial state and upgrade catalog.
func NewEngine(st State, upgrades []Upgrade) *Engine {
	e := &Engine{st: st, upgrades: make(map[string]Upgrade)}
	e.mergeUpgrades(upgrades)
	return e
}

func (e *Engine) mergeUpgrades(upgrades []Upgrade) {
	for _, u := range upgrades {
		e.upgrades[u.ID] = u
	}
}

// ApplyClick applies one direct interaction: the per-click amount is added
// to the balance and the lifetime total, and the click is counted as
// pending until a reconciliation acknowledges it. Returns the amount gained.
// Cooldown enforcement lives in the session governor, not here.
func (e *Engine) ApplyClick() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	gained := e.st.BananasPerClick
	e.st.Bananas += gained
	e.st.TotalBananasEarned += gained
	e.st.TotalClicks++
	e.pending++
	return gained
}

// ApplyPassiveTick adds one tick's worth of passive production. No-op while
// the passive rate is zero.
func (e *Engine) ApplyPassiveTick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.BananasPerSecond <= 0 {
		return
	}
	e.st.Bananas += e.st.BananasPerSecond
	e.st.TotalBananasEarned += e.st.BananasPerSecond
}

// ApplyOfflineEarnings credits the catch-up amount computed by the offline
// reconciler at session start.
func (e *Engine) ApplyOfflineEarnings(amount float64) {
	if amount <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.st.Bananas += amount
	e.st.TotalBananasEarned += amount
}

// ApplyEventReward credits a claimed event reward.
func (e *Engine) ApplyEventReward(amount float64) {
	e.ApplyOfflineEarnings(amount)
}

// ReplaceWithAuthoritative overwrites the whole record with the server's
// state and merges the returned upgrade catalog. Any optimistic deltas
// accrued since the request went out are discarded; the pending-click
// counter resets to zero.
func (e *Engine) ReplaceWithAuthoritative(st State, upgrades []Upgrade) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.st = st
	e.mergeUpgrades(upgrades)
	e.pending = 0
}

// MarkSynced records local bookkeeping time of a successful reconciliation.
// The timestamp only ever advances; the server's own value, assigned during
// ReplaceWithAuthoritative, is the one exception to that rule.
func (e *Engine) MarkSynced(t time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	millis := t.UnixMilli()
	if millis > e.st.LastSync {
		e.st.LastSync = millis
	}
}

// PendingClicks returns the count of clicks not yet acknowledged by a
// reconciliation.
func (e *Engine) PendingClicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Snapshot returns a deep copy of the current state for readers.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.st
	if e.st.OwnedSkins != nil {
		snap.OwnedSkins = append([]string(nil), e.st.OwnedSkins...)
	}
	if e.st.ActiveEvents != nil {
		snap.ActiveEvents = append([]ActiveEvent(nil), e.st.ActiveEvents...)
	}
	return snap
}

// Upgrade looks up one catalog entry by id.
func (e *Engine) Upgrade(id string) (Upgrade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, ok := e.upgrades[id]
	return u, ok
}

// Upgrades returns the catalog sorted by base cost, cheapest first.
func (e *Engine) Upgrades() []Upgrade {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := make([]Upgrade, 0, len(e.upgrades))
	for _, u := range e.upgrades {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].BaseCost != list[j].BaseCost {
			return list[i].BaseCost < list[j].BaseCost
		}
		return list[i].ID < list[j].ID
	})
	return list
}
