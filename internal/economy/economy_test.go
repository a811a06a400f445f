package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeCostScaling(t *testing.T) {
	// floor(100 * 1.15^n)
	assert.Equal(t, int64(100), UpgradeCost(100, TierAction, 0))
	assert.Equal(t, int64(114), UpgradeCost(100, TierAction, 1))
	assert.Equal(t, int64(132), UpgradeCost(100, TierPassive, 2))
}

func TestUpgradeCostMonotonic(t *testing.T) {
	for _, tier := range []Tier{TierAction, TierPassive, TierBoost, TierSynergy} {
		prev := int64(0)
		for owned := 0; owned < 50; owned++ {
			cost := UpgradeCost(25, tier, owned)
			if cost < prev {
				t.Fatalf("tier %s: cost decreased from %d to %d at owned=%d", tier, prev, cost, owned)
			}
			prev = cost
		}
	}
}

func TestUpgradeCostPrestigeFlat(t *testing.T) {
	for owned := 0; owned < 20; owned++ {
		assert.Equal(t, int64(5), UpgradeCost(5, TierPrestige, owned))
	}
}

func TestTierCostKind(t *testing.T) {
	assert.Equal(t, CostFlat, TierPrestige.CostKind())
	assert.Equal(t, CostScaling, TierAction.CostKind())
	assert.Equal(t, CostScaling, TierSynergy.CostKind())
	assert.True(t, TierPrestige.UsesPrestigeCurrency())
	assert.False(t, TierBoost.UsesPrestigeCurrency())
}

func TestCanAfford(t *testing.T) {
	assert.True(t, CanAfford(100, 100))
	assert.True(t, CanAfford(100.5, 100))
	assert.False(t, CanAfford(99.999, 100))
	assert.True(t, CanAfford(0, 0))
}

func TestOfflineEarnings(t *testing.T) {
	// One hour at 2/s.
	assert.Equal(t, int64(7200), OfflineEarnings(3600, 2, 28800))
	// Below the one-minute threshold nothing is awarded.
	assert.Equal(t, int64(0), OfflineEarnings(30, 5, 28800))
	assert.Equal(t, int64(0), OfflineEarnings(60, 5, 28800))
	// Capped at the window.
	assert.Equal(t, int64(28800), OfflineEarnings(100000, 1, 28800))
	// Two hours idle at 5/s.
	assert.Equal(t, int64(36000), OfflineEarnings(7200, 5, 28800))
}

func TestFormatMagnitude(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{999.9, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{1000000, "1.00M"},
		{1500000, "1.50M"},
		{2750000000, "2.75B"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMagnitude(tc.in), "input %v", tc.in)
	}
}
