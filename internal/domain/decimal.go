package domain

import "github.com/shopspring/decimal"

// CostBasis converts a consumed amount into a monetary cost:
// lineCost = PricePerUnit * amount / UnitsPerBasis. A zero UnitsPerBasis
// means the basis cannot price anything; callers substitute zero.
type CostBasis struct {
	PricePerUnit  decimal.Decimal
	UnitsPerBasis decimal.Decimal
}

// Equal reports whether two bases price identically.
func (b CostBasis) Equal(other CostBasis) bool {
	return b.PricePerUnit.Equal(other.PricePerUnit) &&
		b.UnitsPerBasis.Equal(other.UnitsPerBasis)
}

// Num coerces a stored numeric string to a decimal. Missing or malformed
// values become zero; the records are loose about numeric fields and
// arithmetic must not fail on them.
func Num(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Str formats a decimal for persistence.
func Str(d decimal.Decimal) string {
	return d.String()
}
