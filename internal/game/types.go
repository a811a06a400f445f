// Package game owns the canonical in-memory game state for a session and
// the engine that mutates it: optimistic local edits from clicks and ticks,
// and wholesale authoritative overwrites from sync responses.
package game

import "github.com/BananINT/frontend/internal/economy"

// State is the full economy record for one session. Exactly one instance is
// live per session; every successful server round trip replaces it whole.
type State struct {
	SessionID          string        `json:"sessionId"`
	Bananas            float64       `json:"bananas"`
	BananasPerClick    float64       `json:"bananasPerClick"`
	BananasPerSecond   float64       `json:"bananasPerSecond"`
	TotalClicks        int64         `json:"totalClicks"`
	TotalBananasEarned float64       `json:"totalBananasEarned"`
	LastSync           int64         `json:"lastSync"` // epoch millis of the last authoritative reconciliation
	GoldenBananas      float64       `json:"goldenBananas"`
	PrestigeCount      int           `json:"prestigeCount"`
	SelectedSkin       string        `json:"selectedSkin,omitempty"`
	OwnedSkins         []string      `json:"ownedSkins,omitempty"`
	ActiveEvents       []ActiveEvent `json:"activeEvents,omitempty"`
}

// ActiveEvent is a time-boxed bonus window announced by the server.
type ActiveEvent struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	StartedAt       int64   `json:"startedAt"` // epoch millis
	DurationSeconds int64   `json:"durationSeconds"`
	Multiplier      float64 `json:"multiplier,omitempty"`
}

// Upgrade is one purchasable production improvement. Identity is ID.
type Upgrade struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	BaseCost int64        `json:"baseCost"`
	Effect   float64      `json:"effect"`
	Tier     economy.Tier `json:"tier"`
	Owned    int          `json:"owned"`
}

// NextCost prices the next copy of the upgrade.
func (u Upgrade) NextCost() int64 {
	return economy.UpgradeCost(u.BaseCost, u.Tier, u.Owned)
}

// DefaultState returns the state a brand-new session starts from when the
// remote authority cannot be reached at startup.
func DefaultState() State {
	return State{
		BananasPerClick: 1,
	}
}
