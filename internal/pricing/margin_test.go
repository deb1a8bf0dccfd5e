package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestNet(t *testing.T) {
	if got := Net(123); !almostEqual(got, 100) {
		t.Errorf("Expected 100, got %.2f", got)
	}
}

func TestTargetPrice_RoundTripsThroughProfit(t *testing.T) {
	purchase := 61.5
	for _, goal := range []float64{20, 50, 100} {
		price := TargetPrice(purchase, goal)
		if got := Profit(purchase, price); !almostEqual(got, goal) {
			t.Errorf("Goal %.0f: selling at %.2f yields profit %.2f", goal, price, got)
		}
	}
}

func TestProfit(t *testing.T) {
	// Bought at 123 gross (100 net), sold at 246 gross (200 net).
	// Keep 97% of 200 = 194, minus 100 cost = 94.
	if got := Profit(123, 246); !almostEqual(got, 94) {
		t.Errorf("Expected 94, got %.2f", got)
	}
}

func TestBreakdown(t *testing.T) {
	rows := Breakdown(123)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 goals, got %d", len(rows))
	}
	if rows[0].Profit != 20 || rows[2].Profit != 100 {
		t.Errorf("Unexpected goal ordering: %+v", rows)
	}
	for _, r := range rows {
		if r.Price <= 123 {
			t.Errorf("Goal %.0f: target price %.2f below purchase price", r.Profit, r.Price)
		}
	}
}
