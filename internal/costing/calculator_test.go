package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

func basis(price, units string) domain.CostBasis {
	return domain.CostBasis{PricePerUnit: domain.Num(price), UnitsPerBasis: domain.Num(units)}
}

func TestLineCost(t *testing.T) {
	t.Run("prices amount against the basis", func(t *testing.T) {
		got := LineCost(basis("100", "10"), decimal.NewFromInt(2))
		assert.True(t, got.Equal(decimal.NewFromInt(20)), "got %s", got)
	})

	t.Run("zero divisor yields zero instead of failing", func(t *testing.T) {
		got := LineCost(basis("100", "0"), decimal.NewFromInt(2))
		assert.True(t, got.IsZero())
	})

	t.Run("missing divisor yields zero", func(t *testing.T) {
		got := LineCost(basis("100", ""), decimal.NewFromInt(2))
		assert.True(t, got.IsZero())
	})

	t.Run("fractional result keeps precision", func(t *testing.T) {
		got := LineCost(basis("100", "3"), decimal.NewFromInt(1))
		want := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))
		assert.True(t, got.Equal(want), "got %s", got)
	})
}

func TestPriceLine(t *testing.T) {
	t.Run("active line is priced", func(t *testing.T) {
		line := domain.RecipeLine{ID: 1, Amount: "2", IsActive: true}
		assert.Equal(t, "20", PriceLine(line, basis("100", "10")))
	})

	t.Run("inactive line costs nothing", func(t *testing.T) {
		line := domain.RecipeLine{ID: 1, Amount: "2", IsActive: false}
		assert.Equal(t, "0", PriceLine(line, basis("100", "10")))
	})

	t.Run("malformed amount coerces to zero", func(t *testing.T) {
		line := domain.RecipeLine{ID: 1, Amount: "abc", IsActive: true}
		assert.Equal(t, "0", PriceLine(line, basis("100", "10")))
	})
}

func TestRepriceLines(t *testing.T) {
	t.Run("reprices every line referencing the child", func(t *testing.T) {
		lines := []domain.RecipeLine{
			{ID: 1, Amount: "2", Cost: "20", IsActive: true},
			{ID: 2, Amount: "5", Cost: "50", IsActive: true},
			{ID: 1, Amount: "3", Cost: "30", IsActive: false},
		}

		changed := RepriceLines(lines, 1, basis("200", "10"))

		assert.True(t, changed)
		assert.Equal(t, "40", lines[0].Cost)
		assert.Equal(t, "50", lines[1].Cost, "unrelated line untouched")
		assert.Equal(t, "60", lines[2].Cost, "inactive line repriced too")
	})

	t.Run("idempotent for an unchanged basis", func(t *testing.T) {
		lines := []domain.RecipeLine{{ID: 1, Amount: "2", Cost: "20", IsActive: true}}

		RepriceLines(lines, 1, basis("100", "10"))
		before := lines[0].Cost
		changed := RepriceLines(lines, 1, basis("100", "10"))

		assert.False(t, changed)
		assert.Equal(t, before, lines[0].Cost)
	})
}

func TestTotalActiveCost(t *testing.T) {
	t.Run("sums active lines across all lists", func(t *testing.T) {
		got := TotalActiveCost(
			[]domain.RecipeLine{
				{ID: 1, Cost: "20", IsActive: true},
				{ID: 2, Cost: "99", IsActive: false},
			},
			[]domain.RecipeLine{
				{ID: 3, Cost: "15", IsActive: true},
			},
		)
		assert.True(t, got.Equal(decimal.NewFromInt(35)), "got %s", got)
	})

	t.Run("empty lists total zero", func(t *testing.T) {
		assert.True(t, TotalActiveCost(nil, nil).IsZero())
	})
}
