// Package score derives the earliness score, tier and join date of a wallet
// from the slot of its first transaction.
//
// The score is a generous heuristic for a young network: which day-bucket the
// first transaction falls in matters more than absolute recency. It is not a
// percentile.
package score

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// SlotsPerDay assumes ~40ms slots: 25 slots/s * 86400 s.
	SlotsPerDay uint64 = 2_160_000
	// SecondsPerBlock is the assumed slot time used to estimate dates.
	SecondsPerBlock = 0.04
)

// LaunchDate is when the Fogo testnet produced slot 0.
var LaunchDate = time.Date(2025, time.July, 22, 0, 0, 0, 0, time.UTC)

type bucket struct {
	days    uint64
	bonus   float64
	ceiling float64
}

var buckets = []bucket{
	{days: 1, bonus: 40, ceiling: 99.9},
	{days: 2, bonus: 30, ceiling: 95.0},
	{days: 3, bonus: 20, ceiling: 90.0},
	{days: 5, bonus: 10, ceiling: 85.0},
}

// lateFloor is the minimum score for first transactions past the last bucket.
const lateFloor = 50.0

// Score maps the first-transaction slot and the current slot to [0, 100],
// rounded to two decimals. It returns 0 when latest is not after first.
func Score(first, latest uint64) float64 {
	if latest <= first || latest == 0 {
		return 0
	}
	base := (1 - float64(first)/float64(latest)) * 100
	s := math.Max(base, lateFloor)
	for _, b := range buckets {
		if first < b.days*SlotsPerDay {
			s = math.Min(base+b.bonus, b.ceiling)
			break
		}
	}
	return round2(math.Min(math.Max(s, 0), 100))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// JoinDate is the UTC calendar date of a wallet's first transaction. The
// block time wins when known; otherwise it is estimated from the slot.
func JoinDate(slot uint64, blockTime *time.Time) time.Time {
	var t time.Time
	if blockTime != nil {
		t = blockTime.UTC()
	} else {
		elapsed := time.Duration(float64(slot) * SecondsPerBlock * float64(time.Second))
		t = LaunchDate.Add(elapsed)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
