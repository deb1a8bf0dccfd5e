// Package pricing computes net margins for Polish sole traders on the
// 3% flat tax, with 23% VAT on both sides of the trade.
package pricing

const (
	vatRate     = 1.23
	flatTaxKeep = 0.97 // seller keeps 97% of net revenue
)

// Net strips VAT from a gross amount.
func Net(gross float64) float64 {
	return gross / vatRate
}

// TargetPrice returns the gross sale price that clears the given net
// profit goal over the gross purchase price, after VAT and flat tax.
func TargetPrice(purchaseGross, goal float64) float64 {
	return ((Net(purchaseGross) + goal) / flatTaxKeep) * vatRate
}

// Profit returns the net profit of selling at saleGross something
// bought at purchaseGross.
func Profit(purchaseGross, saleGross float64) float64 {
	return Net(saleGross)*flatTaxKeep - Net(purchaseGross)
}

// Goal is one target-profit row in a margin breakdown.
type Goal struct {
	Profit float64 `json:"profit"`
	Price  float64 `json:"price"`
}

// DefaultGoals are the profit levels quoted when no sale price is known.
var DefaultGoals = []float64{20, 50, 100}

// Breakdown lists the sale prices needed for each default profit goal.
func Breakdown(purchaseGross float64) []Goal {
	goals := make([]Goal, 0, len(DefaultGoals))
	for _, g := range DefaultGoals {
		goals = append(goals, Goal{Profit: g, Price: TargetPrice(purchaseGross, g)})
	}
	return goals
}
