package valuation

import (
	"math"
	"testing"
)

func TestComputeMarketValueBaseline(t *testing.T) {
	// rating 1.0 with no bonuses must hit the base value exactly.
	if got := ComputeMarketValue(1.0, 0, 0); got != 50000 {
		t.Fatalf("ComputeMarketValue(1.0, 0, 0) = %v, want 50000", got)
	}
}

func TestComputeMarketValueClampsToFloor(t *testing.T) {
	for _, rating := range []float64{0, 0.01, 0.1} {
		got := ComputeMarketValue(rating, 0, 0)
		if got != MinMarketValue {
			t.Fatalf("ComputeMarketValue(%v, 0, 0) = %v, want floor %v", rating, got, float64(MinMarketValue))
		}
	}
}

func TestComputeMarketValueClampsToCeiling(t *testing.T) {
	got := ComputeMarketValue(100, 50, 100000)
	if got != MaxMarketValue {
		t.Fatalf("ComputeMarketValue(100, 50, 100000) = %v, want ceiling %v", got, float64(MaxMarketValue))
	}
}

func TestComputeMarketValueWithinBounds(t *testing.T) {
	cases := []struct {
		rating  float64
		kd      float64
		matches int
	}{
		{0, 0, 0},
		{0.5, 0.5, 10},
		{1.0, 1.2, 250},
		{1.35, 1.8, 900},
		{2.0, 3.0, 5000},
		{50, 20, 100000},
	}

	for _, c := range cases {
		got := ComputeMarketValue(c.rating, c.kd, c.matches)
		if got < MinMarketValue || got > MaxMarketValue {
			t.Fatalf("ComputeMarketValue(%v, %v, %d) = %v, outside [%d, %d]",
				c.rating, c.kd, c.matches, got, MinMarketValue, MaxMarketValue)
		}
	}
}

func TestComputeMarketValueFormula(t *testing.T) {
	rating, kd, matches := 1.2, 1.5, 300.0
	want := 50000 * math.Pow(rating, 1.5) * (1 + kd/10) * (1 + matches/500)

	got := ComputeMarketValue(rating, kd, int(matches))
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("ComputeMarketValue(%v, %v, %v) = %v, want %v", rating, kd, matches, got, want)
	}
}

func TestComputeMarketValueMonotonic(t *testing.T) {
	base := ComputeMarketValue(1.1, 1.0, 200)

	if got := ComputeMarketValue(1.2, 1.0, 200); got <= base {
		t.Fatalf("expected higher rating to raise value: %v <= %v", got, base)
	}
	if got := ComputeMarketValue(1.1, 1.5, 200); got <= base {
		t.Fatalf("expected higher kd to raise value: %v <= %v", got, base)
	}
	if got := ComputeMarketValue(1.1, 1.0, 400); got <= base {
		t.Fatalf("expected more matches to raise value: %v <= %v", got, base)
	}
}
