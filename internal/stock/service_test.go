package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo0222/ftf-backoffice/internal/database/memory"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/repository"
)

const shop = "demo"

func newService(t *testing.T) (*Service, *repository.Foods) {
	t.Helper()
	foods := repository.NewFoods(memory.NewStore())
	return NewService(foods), foods
}

func seedMaterialWithShadow(t *testing.T, svc *Service, foods *repository.Foods) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, foods.PutMaterial(ctx, &domain.Material{
		ID:       1,
		ShopName: shop,
		Name:     "rice",
		Order:    domain.OrderBasis{AmountPerOrder: "10", OrderUnit: "bag"},
		Count:    domain.CountBasis{CountPerOrder: "20", CountUnit: "pack"},
		Measure:  domain.OrderMeasure{MeasurePerOrder: "100", MeasureUnit: "kg"},
		IsActive: true,
	}))
	require.NoError(t, svc.EnsureShadow(ctx, &domain.Stock{
		ID:       1,
		ShopName: shop,
		FoodType: domain.FoodTypeMaterial,
		Name:     "rice",
		Order:    domain.OrderBasis{OrderUnit: "bag"},
		Count:    domain.CountBasis{CountUnit: "pack"},
		Measure:  domain.StockMeasure{MeasureUnit: "kg"},
	}))
}

func TestEnsureShadow(t *testing.T) {
	ctx := context.Background()
	svc, foods := newService(t)

	require.NoError(t, svc.EnsureShadow(ctx, &domain.Stock{
		ID:       1,
		ShopName: shop,
		FoodType: domain.FoodTypeIngredient,
		Name:     "sauce",
		Prepare:  domain.PrepareBasis{PrepareUnit: "pot"},
		Measure:  domain.StockMeasure{MeasureUnit: "l"},
	}))

	shadow, err := foods.GetStock(ctx, shop, domain.FoodTypeIngredientStock, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.FoodTypeIngredientStock, shadow.FoodType)
	assert.True(t, shadow.IsActive)
	assert.Empty(t, shadow.Prepare.AmountPerPrepare, "amounts start unset")
}

func TestEnsureShadowRejectsOtherTiers(t *testing.T) {
	svc, _ := newService(t)
	err := svc.EnsureShadow(context.Background(), &domain.Stock{ID: 1, ShopName: shop, FoodType: domain.FoodTypeProduct})
	assert.ErrorIs(t, err, domain.ErrUnknownFoodType)
}

func TestRecordEntryMaterial(t *testing.T) {
	ctx := context.Background()

	t.Run("order count derives the other kinds", func(t *testing.T) {
		svc, foods := newService(t)
		seedMaterialWithShadow(t, svc, foods)

		shadow, err := svc.RecordEntry(ctx, shop, Entry{
			FoodType: domain.FoodTypeMaterial, ID: 1, Kind: EntryKindOrder, Amount: "5",
		})
		require.NoError(t, err)

		assert.Equal(t, "5", shadow.Order.AmountPerOrder)
		assert.Equal(t, "10", shadow.Count.CountPerOrder, "5 * 20 / 10")
		assert.Equal(t, "50", shadow.Measure.MeasurePerOrder, "5 * 100 / 10")
	})

	t.Run("measure count derives order and count", func(t *testing.T) {
		svc, foods := newService(t)
		seedMaterialWithShadow(t, svc, foods)

		shadow, err := svc.RecordEntry(ctx, shop, Entry{
			FoodType: domain.FoodTypeMaterial, ID: 1, Kind: EntryKindMeasure, Amount: "30",
		})
		require.NoError(t, err)

		assert.Equal(t, "30", shadow.Measure.MeasurePerOrder)
		assert.Equal(t, "3", shadow.Order.AmountPerOrder, "30 * 10 / 100")
		assert.Equal(t, "6", shadow.Count.CountPerOrder, "30 * 20 / 100")
	})

	t.Run("prepare kind is invalid for materials", func(t *testing.T) {
		svc, foods := newService(t)
		seedMaterialWithShadow(t, svc, foods)

		_, err := svc.RecordEntry(ctx, shop, Entry{
			FoodType: domain.FoodTypeMaterial, ID: 1, Kind: EntryKindPrepare, Amount: "5",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRecordEntryZeroBase(t *testing.T) {
	ctx := context.Background()
	svc, foods := newService(t)

	require.NoError(t, foods.PutMaterial(ctx, &domain.Material{
		ID:       2,
		ShopName: shop,
		Name:     "salt",
		Order:    domain.OrderBasis{AmountPerOrder: "10"},
		// no count basis
		Measure:  domain.OrderMeasure{MeasurePerOrder: "100"},
		IsActive: true,
	}))
	require.NoError(t, svc.EnsureShadow(ctx, &domain.Stock{ID: 2, ShopName: shop, FoodType: domain.FoodTypeMaterial}))

	t.Run("missing target base leaves that amount unset", func(t *testing.T) {
		shadow, err := svc.RecordEntry(ctx, shop, Entry{
			FoodType: domain.FoodTypeMaterial, ID: 2, Kind: EntryKindOrder, Amount: "5",
		})
		require.NoError(t, err)
		assert.Equal(t, "5", shadow.Order.AmountPerOrder)
		assert.Empty(t, shadow.Count.CountPerOrder)
		assert.Equal(t, "50", shadow.Measure.MeasurePerOrder)
	})

	t.Run("missing input base skips the entry entirely", func(t *testing.T) {
		shadow, err := svc.RecordEntry(ctx, shop, Entry{
			FoodType: domain.FoodTypeMaterial, ID: 2, Kind: EntryKindCount, Amount: "7",
		})
		require.NoError(t, err)
		assert.Empty(t, shadow.Count.CountPerOrder, "nothing recorded")
	})
}

func TestRecordEntryIngredient(t *testing.T) {
	ctx := context.Background()
	svc, foods := newService(t)

	require.NoError(t, foods.PutIngredient(ctx, &domain.Ingredient{
		ID:       3,
		ShopName: shop,
		Name:     "sauce",
		Prepare:  domain.PrepareBasis{AmountPerPrepare: "2", PrepareUnit: "pot"},
		Measure:  domain.PrepareMeasure{MeasurePerPrepare: "8", MeasureUnit: "l"},
		IsActive: true,
	}))
	require.NoError(t, svc.EnsureShadow(ctx, &domain.Stock{ID: 3, ShopName: shop, FoodType: domain.FoodTypeIngredient}))

	shadow, err := svc.RecordEntry(ctx, shop, Entry{
		FoodType: domain.FoodTypeIngredient, ID: 3, Kind: EntryKindPrepare, Amount: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", shadow.Prepare.AmountPerPrepare)
	assert.Equal(t, "4", shadow.Measure.MeasurePerPrepare, "1 * 8 / 2")
}

func TestRefreshShadow(t *testing.T) {
	ctx := context.Background()
	svc, foods := newService(t)
	seedMaterialWithShadow(t, svc, foods)

	_, err := svc.RecordEntry(ctx, shop, Entry{
		FoodType: domain.FoodTypeMaterial, ID: 1, Kind: EntryKindOrder, Amount: "5",
	})
	require.NoError(t, err)

	units := domain.Stock{
		Order:   domain.OrderBasis{OrderUnit: "box"},
		Count:   domain.CountBasis{CountUnit: "pack"},
		Measure: domain.StockMeasure{MeasureUnit: "kg"},
	}
	require.NoError(t, svc.RefreshShadow(ctx, shop, domain.FoodTypeMaterial, 1, "premium rice", units))

	shadow, err := foods.GetStock(ctx, shop, domain.FoodTypeMaterialStock, 1)
	require.NoError(t, err)
	assert.Equal(t, "premium rice", shadow.Name)
	assert.Equal(t, "box", shadow.Order.OrderUnit)
	assert.Equal(t, "5", shadow.Order.AmountPerOrder, "recorded amounts survive")

	t.Run("missing shadow is not an error", func(t *testing.T) {
		assert.NoError(t, svc.RefreshShadow(ctx, shop, domain.FoodTypeMaterial, 99, "x", units))
	})
}

func TestFindAll(t *testing.T) {
	ctx := context.Background()
	svc, foods := newService(t)
	seedMaterialWithShadow(t, svc, foods)

	stocks, err := svc.FindAll(ctx, shop, domain.FoodTypeMaterial)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, 1, stocks[0].ID)

	empty, err := svc.FindAll(ctx, shop, domain.FoodTypeIngredient)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
