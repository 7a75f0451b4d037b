package valuation

import "math"

// Market value bounds in EUR. Every estimate clamps into this window, so a
// rookie with zero stats still lists at the floor instead of zero.
const (
	MinMarketValue = 10000
	MaxMarketValue = 5000000
)

const (
	baseValue      = 50000
	ratingExponent = 1.5
	kdWeight       = 10
	matchesWeight  = 500
)

// ComputeMarketValue estimates a player's market value from performance
// statistics. Deterministic and stateless; called on listing creation and on
// every stats refresh.
//
//	raw = 50000 * rating^1.5 * (1 + kd/10) * (1 + matches/500)
//
// clamped to [MinMarketValue, MaxMarketValue].
func ComputeMarketValue(rating float64, killDeathRatio float64, matchesPlayed int) float64 {
	raw := baseValue *
		math.Pow(rating, ratingExponent) *
		(1 + killDeathRatio/kdWeight) *
		(1 + float64(matchesPlayed)/matchesWeight)

	return clamp(raw, MinMarketValue, MaxMarketValue)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
