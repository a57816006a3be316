// Package costing holds the pure cost arithmetic shared by every tier:
// pricing recipe lines against a child's cost basis, totalling active lines,
// and diffing a submitted recipe against the persisted one.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

// LineCost prices a consumed amount against a child's cost basis:
// pricePerUnit * amount / unitsPerBasis. A zero or missing divisor yields
// zero so a single misconfigured child never fails a whole recompute.
func LineCost(basis domain.CostBasis, amount decimal.Decimal) decimal.Decimal {
	if basis.UnitsPerBasis.IsZero() {
		return decimal.Zero
	}
	return basis.PricePerUnit.Mul(amount).Div(basis.UnitsPerBasis)
}

// PriceLine returns the persisted cost string for one recipe line. Inactive
// lines cost nothing.
func PriceLine(line domain.RecipeLine, basis domain.CostBasis) string {
	if !line.IsActive {
		return "0"
	}
	return domain.Str(LineCost(basis, domain.Num(line.Amount)))
}

// RepriceLines recomputes the cost of every line referencing childID from
// the child's current basis, in place, reporting whether any cost moved.
// Inactive lines are repriced too; the total only counts active ones, but a
// stale cost on a dormant line would resurface the moment it is reactivated.
func RepriceLines(lines []domain.RecipeLine, childID int, basis domain.CostBasis) bool {
	changed := false
	for i := range lines {
		if lines[i].ID != childID {
			continue
		}
		cost := domain.Str(LineCost(basis, domain.Num(lines[i].Amount)))
		if !domain.Num(lines[i].Cost).Equal(domain.Num(cost)) {
			changed = true
		}
		lines[i].Cost = cost
	}
	return changed
}

// TotalActiveCost sums the cost of every active line across all given
// recipe lists. This is the full recompute run on every write; totals are
// never adjusted incrementally.
func TotalActiveCost(lists ...[]domain.RecipeLine) decimal.Decimal {
	total := decimal.Zero
	for _, lines := range lists {
		for _, line := range lines {
			if !line.IsActive {
				continue
			}
			total = total.Add(domain.Num(line.Cost))
		}
	}
	return total
}
