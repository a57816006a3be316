package repository

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

// Related list field names, one per parent tier that can appear in a
// back-reference list.
const (
	FieldRelatedIngredientList = "related_ingredient_list"
	FieldRelatedBaseItemList   = "related_base_item_list"
	FieldRelatedProductList    = "related_product_list"
)

// RelatedListField names the back-reference list a child record keeps for
// parents of the given tier.
func RelatedListField(parent domain.Tier) string {
	switch parent {
	case domain.TierIngredient:
		return FieldRelatedIngredientList
	case domain.TierBaseItem:
		return FieldRelatedBaseItemList
	case domain.TierProduct:
		return FieldRelatedProductList
	}
	return ""
}

// Foods is the typed view of the record store the services work with.
type Foods struct {
	store Store
}

func NewFoods(store Store) *Foods {
	return &Foods{store: store}
}

func (f *Foods) GetMaterial(ctx context.Context, shopName string, id int) (*domain.Material, error) {
	return GetEntity[domain.Material](ctx, f.store, shopName, domain.FoodTypeMaterial, id)
}

func (f *Foods) PutMaterial(ctx context.Context, m *domain.Material) error {
	return PutEntity(ctx, f.store, m.ShopName, domain.FoodTypeMaterial, m.ID, m)
}

func (f *Foods) ListMaterials(ctx context.Context, shopName string) ([]*domain.Material, error) {
	return ListEntities[domain.Material](ctx, f.store, shopName, domain.FoodTypeMaterial)
}

func (f *Foods) GetIngredient(ctx context.Context, shopName string, id int) (*domain.Ingredient, error) {
	return GetEntity[domain.Ingredient](ctx, f.store, shopName, domain.FoodTypeIngredient, id)
}

func (f *Foods) PutIngredient(ctx context.Context, i *domain.Ingredient) error {
	return PutEntity(ctx, f.store, i.ShopName, domain.FoodTypeIngredient, i.ID, i)
}

func (f *Foods) ListIngredients(ctx context.Context, shopName string) ([]*domain.Ingredient, error) {
	return ListEntities[domain.Ingredient](ctx, f.store, shopName, domain.FoodTypeIngredient)
}

func (f *Foods) GetBaseItem(ctx context.Context, shopName string, id int) (*domain.BaseItem, error) {
	return GetEntity[domain.BaseItem](ctx, f.store, shopName, domain.FoodTypeBaseItem, id)
}

func (f *Foods) PutBaseItem(ctx context.Context, b *domain.BaseItem) error {
	return PutEntity(ctx, f.store, b.ShopName, domain.FoodTypeBaseItem, b.ID, b)
}

func (f *Foods) ListBaseItems(ctx context.Context, shopName string) ([]*domain.BaseItem, error) {
	return ListEntities[domain.BaseItem](ctx, f.store, shopName, domain.FoodTypeBaseItem)
}

func (f *Foods) GetProduct(ctx context.Context, shopName string, id int) (*domain.Product, error) {
	return GetEntity[domain.Product](ctx, f.store, shopName, domain.FoodTypeProduct, id)
}

func (f *Foods) PutProduct(ctx context.Context, p *domain.Product) error {
	return PutEntity(ctx, f.store, p.ShopName, domain.FoodTypeProduct, p.ID, p)
}

func (f *Foods) ListProducts(ctx context.Context, shopName string) ([]*domain.Product, error) {
	return ListEntities[domain.Product](ctx, f.store, shopName, domain.FoodTypeProduct)
}

func (f *Foods) GetWholesaler(ctx context.Context, shopName string, id int) (*domain.Wholesaler, error) {
	return GetEntity[domain.Wholesaler](ctx, f.store, shopName, domain.FoodTypeWholesaler, id)
}

func (f *Foods) PutWholesaler(ctx context.Context, w *domain.Wholesaler) error {
	return PutEntity(ctx, f.store, w.ShopName, domain.FoodTypeWholesaler, w.ID, w)
}

func (f *Foods) ListWholesalers(ctx context.Context, shopName string) ([]*domain.Wholesaler, error) {
	return ListEntities[domain.Wholesaler](ctx, f.store, shopName, domain.FoodTypeWholesaler)
}

func (f *Foods) GetStock(ctx context.Context, shopName string, foodType domain.FoodType, id int) (*domain.Stock, error) {
	return GetEntity[domain.Stock](ctx, f.store, shopName, foodType, id)
}

func (f *Foods) PutStock(ctx context.Context, s *domain.Stock) error {
	return PutEntity(ctx, f.store, s.ShopName, s.FoodType, s.ID, s)
}

func (f *Foods) ListStocks(ctx context.Context, shopName string, foodType domain.FoodType) ([]*domain.Stock, error) {
	return ListEntities[domain.Stock](ctx, f.store, shopName, foodType)
}

// UpdateRelatedList overwrites one back-reference list on a child record.
func (f *Foods) UpdateRelatedList(ctx context.Context, shopName string, childType domain.FoodType, childID int, field string, list []domain.BackReference) error {
	return UpdateListField(ctx, f.store, shopName, childType, childID, field, list)
}

func (f *Foods) NextSequence(ctx context.Context, shopName string, foodType domain.FoodType) (int, error) {
	return f.store.NextSequence(ctx, shopName, foodType)
}

func (f *Foods) AdvanceSequence(ctx context.Context, shopName string, foodType domain.FoodType) error {
	return f.store.AdvanceSequence(ctx, shopName, foodType)
}
