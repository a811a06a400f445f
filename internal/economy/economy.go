// Package economy holds the pure calculators of the banana economy:
// the upgrade cost curve, affordability, magnitude formatting, and the
// offline earnings formula. Nothing here touches state or I/O.
package economy

import (
	"fmt"
	"math"
)

// Tier categorizes an upgrade and decides its cost rule and currency.
type Tier string

const (
	TierAction   Tier = "action"
	TierPassive  Tier = "passive"
	TierBoost    Tier = "boost"
	TierPrestige Tier = "prestige"
	TierSynergy  Tier = "synergy"
)

// CostKind is the closed set of cost-scaling rules an upgrade tier can have.
type CostKind int

const (
	// CostScaling grows exponentially with every copy owned.
	CostScaling CostKind = iota
	// CostFlat stays at the base price; used for rare prestige trades.
	CostFlat
)

// CostKind maps a tier to its cost rule. Prestige purchases are priced flat;
// every other tier scales.
func (t Tier) CostKind() CostKind {
	if t == TierPrestige {
		return CostFlat
	}
	return CostScaling
}

// UsesPrestigeCurrency reports whether purchases of this tier spend golden
// bananas instead of bananas.
func (t Tier) UsesPrestigeCurrency() bool {
	return t == TierPrestige
}

// GrowthFactor is the per-copy multiplier for scaling-cost upgrades. Keeps
// standard upgrades perpetually relevant as production grows.
const GrowthFactor = 1.15

const (
	// OfflineThresholdSeconds gates offline earnings: absences at or below
	// one minute award nothing, so rapid reconnects earn no bonus.
	OfflineThresholdSeconds = 60
	// OfflineMaxWindowSeconds caps the catch-up window at 8 hours.
	OfflineMaxWindowSeconds = 28800
)

// UpgradeCost prices the next copy of an upgrade given how many are owned.
func UpgradeCost(baseCost int64, tier Tier, owned int) int64 {
	if tier.CostKind() == CostFlat {
		return baseCost
	}
	return int64(math.Floor(float64(baseCost) * math.Pow(GrowthFactor, float64(owned))))
}

// CanAfford reports whether the available balance covers the cost.
func CanAfford(available float64, cost int64) bool {
	return available >= float64(cost)
}

// OfflineEarnings computes bananas accrued during an absence of
// elapsedSeconds at ratePerSecond, capped at maxWindowSeconds. Absences at
// or below the one-minute threshold earn nothing.
func OfflineEarnings(elapsedSeconds, ratePerSecond, maxWindowSeconds float64) int64 {
	if elapsedSeconds <= OfflineThresholdSeconds {
		return 0
	}
	window := math.Min(elapsedSeconds, maxWindowSeconds)
	return int64(math.Floor(window * ratePerSecond))
}

// FormatMagnitude renders a non-negative banana count as a compact display
// string: 1 decimal with a K suffix above a thousand, 2 decimals with M
// above a million, 2 decimals with B above a billion, otherwise the floored
// integer.
func FormatMagnitude(n float64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.2fB", n/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return fmt.Sprintf("%d", int64(math.Floor(n)))
	}
}
