package score

import "math"

// UnknownTier is returned when no tier threshold lies above the slot.
const UnknownTier = "🔴 Unknown"

// Tier labels every slot strictly below Threshold (and above the previous tier's).
type Tier struct {
	Threshold float64
	Label     string
}

// Tiers is ordered by strictly increasing Threshold.
type Tiers []Tier

// DefaultTiers follows the testnet's first days at ~2.16M slots per day.
var DefaultTiers = Tiers{
	{Threshold: 2_200_000, Label: "🔥 Genesis Early (Day 1)"},
	{Threshold: 4_300_000, Label: "🟠 Super Early (Day 2)"},
	{Threshold: 6_500_000, Label: "🟡 Early (Day 3)"},
	{Threshold: 10_800_000, Label: "🟤 Late (Day 5)"},
	{Threshold: math.Inf(1), Label: "🔴 Recently Joined"},
}

// Lookup returns the label of the first tier whose threshold is strictly
// greater than slot.
func (t Tiers) Lookup(slot uint64) string {
	pos := float64(slot)
	for _, tier := range t {
		if pos < tier.Threshold {
			return tier.Label
		}
	}
	return UnknownTier
}

// TierFor looks slot up in DefaultTiers.
func TierFor(slot uint64) string { return DefaultTiers.Lookup(slot) }
