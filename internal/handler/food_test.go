package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// fakeCatalog records the last dispatched command and returns canned values.
type fakeCatalog struct {
	material   *domain.Material
	ingredient *domain.Ingredient
	baseItem   *domain.BaseItem
	product    *domain.Product
	wholesaler *domain.Wholesaler
	materials  []*domain.Material
	result     *propagation.Result
	err        error

	lastCmd  any
	lastShop string
}

func (f *fakeCatalog) RegisterMaterial(_ context.Context, cmd domain.MaterialCommand) (*domain.Material, error) {
	f.lastCmd = cmd
	return f.material, f.err
}

func (f *fakeCatalog) UpdateMaterial(_ context.Context, cmd domain.MaterialCommand) (*domain.Material, *propagation.Result, error) {
	f.lastCmd = cmd
	return f.material, f.result, f.err
}

func (f *fakeCatalog) FindAllMaterials(_ context.Context, shopName string) ([]*domain.Material, error) {
	f.lastShop = shopName
	return f.materials, f.err
}

func (f *fakeCatalog) RegisterIngredient(_ context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, error) {
	f.lastCmd = cmd
	return f.ingredient, f.err
}

func (f *fakeCatalog) UpdateIngredient(_ context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, *propagation.Result, error) {
	f.lastCmd = cmd
	return f.ingredient, f.result, f.err
}

func (f *fakeCatalog) FindAllIngredients(_ context.Context, shopName string) ([]*domain.Ingredient, error) {
	f.lastShop = shopName
	return nil, f.err
}

func (f *fakeCatalog) RegisterBaseItem(_ context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, error) {
	f.lastCmd = cmd
	return f.baseItem, f.err
}

func (f *fakeCatalog) UpdateBaseItem(_ context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, *propagation.Result, error) {
	f.lastCmd = cmd
	return f.baseItem, f.result, f.err
}

func (f *fakeCatalog) FindAllBaseItems(_ context.Context, shopName string) ([]*domain.BaseItem, error) {
	f.lastShop = shopName
	return nil, f.err
}

func (f *fakeCatalog) RegisterProduct(_ context.Context, cmd domain.ProductCommand) (*domain.Product, error) {
	f.lastCmd = cmd
	return f.product, f.err
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, cmd domain.ProductCommand) (*domain.Product, error) {
	f.lastCmd = cmd
	return f.product, f.err
}

func (f *fakeCatalog) FindAllProducts(_ context.Context, shopName string) ([]*domain.Product, error) {
	f.lastShop = shopName
	return nil, f.err
}

func (f *fakeCatalog) RegisterWholesaler(_ context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error) {
	f.lastCmd = cmd
	return f.wholesaler, f.err
}

func (f *fakeCatalog) UpdateWholesaler(_ context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error) {
	f.lastCmd = cmd
	return f.wholesaler, f.err
}

func (f *fakeCatalog) FindAllWholesalers(_ context.Context, shopName string) ([]*domain.Wholesaler, error) {
	f.lastShop = shopName
	return nil, f.err
}

func postFood(t *testing.T, h *FoodHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleFood(rec, req)
	return rec
}

func TestHandleFoodRegisterMaterial(t *testing.T) {
	fake := &fakeCatalog{material: &domain.Material{ID: 1, Name: "tomato", IsActive: true}}
	h := NewFoodHandler(fake)

	rec := postFood(t, h, `{
		"food_type": "material",
		"operation": "register",
		"shop_name": "demo",
		"payload": {"materialInfo": {"name": "tomato", "price_per_order": "100"}}
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	cmd, ok := fake.lastCmd.(domain.MaterialCommand)
	require.True(t, ok)
	assert.Equal(t, domain.OperationRegister, cmd.Op)
	assert.Equal(t, "demo", cmd.ShopName)
	assert.Equal(t, "tomato", cmd.Item.Name)
	assert.Equal(t, "100", cmd.Item.PricePerOrder)

	var body struct {
		Material *domain.Material `json:"material"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Material)
	assert.Equal(t, 1, body.Material.ID)
}

func TestHandleFoodUpdateIngredient(t *testing.T) {
	fake := &fakeCatalog{
		ingredient: &domain.Ingredient{ID: 3, Name: "sauce", IsActive: true},
		result:     &propagation.Result{BaseItems: []int{5}, Products: []int{7}},
	}
	h := NewFoodHandler(fake)

	rec := postFood(t, h, `{
		"food_type": "ingredient",
		"operation": "update",
		"shop_name": "demo",
		"payload": {
			"ingredientInfo": {"id": 3, "name": "sauce", "preparation_type": "process_material"},
			"recipe": [{"id": 1, "amount": "2", "is_active": true}]
		}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	cmd, ok := fake.lastCmd.(domain.IngredientCommand)
	require.True(t, ok)
	assert.Equal(t, 3, cmd.Info.ID)
	require.Len(t, cmd.Recipe, 1)
	assert.True(t, cmd.Recipe[0].IsActive)

	var body struct {
		Updated *UpdatedEntities `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Updated)
	assert.Equal(t, []int{5}, body.Updated.BaseItems)
	assert.Equal(t, []int{7}, body.Updated.Products)
}

func TestHandleFoodFindAll(t *testing.T) {
	fake := &fakeCatalog{materials: []*domain.Material{{ID: 1}, {ID: 2}}}
	h := NewFoodHandler(fake)

	rec := postFood(t, h, `{"food_type": "material", "operation": "findAll", "shop_name": "demo"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo", fake.lastShop)

	var body struct {
		MaterialList []*domain.Material `json:"material_list"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.MaterialList, 2)
}

func TestHandleFoodValidation(t *testing.T) {
	h := NewFoodHandler(&fakeCatalog{})

	t.Run("malformed body", func(t *testing.T) {
		rec := postFood(t, h, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing shop_name", func(t *testing.T) {
		rec := postFood(t, h, `{"food_type": "material", "operation": "findAll"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown food type", func(t *testing.T) {
		rec := postFood(t, h, `{"food_type": "beverage", "operation": "findAll", "shop_name": "demo"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown operation", func(t *testing.T) {
		rec := postFood(t, h, `{"food_type": "material", "operation": "destroy", "shop_name": "demo"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("register without payload", func(t *testing.T) {
		rec := postFood(t, h, `{"food_type": "material", "operation": "register", "shop_name": "demo"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleFoodServiceErrors(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		h := NewFoodHandler(&fakeCatalog{err: domain.ErrNotFound})
		rec := postFood(t, h, `{
			"food_type": "material",
			"operation": "update",
			"shop_name": "demo",
			"payload": {"materialInfo": {"id": 9}}
		}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unexpected error maps to 500", func(t *testing.T) {
		h := NewFoodHandler(&fakeCatalog{err: assert.AnError})
		rec := postFood(t, h, `{"food_type": "product", "operation": "findAll", "shop_name": "demo"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
