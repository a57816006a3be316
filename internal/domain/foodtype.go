package domain

// FoodType identifies the partition a record is stored under.
type FoodType string

const (
	FoodTypeMaterial   FoodType = "material"
	FoodTypeIngredient FoodType = "ingredient"
	FoodTypeBaseItem   FoodType = "base-item"
	FoodTypeProduct    FoodType = "product"
	FoodTypeWholesaler FoodType = "wholesaler"

	// Stock shadow partitions, written alongside material/ingredient records.
	FoodTypeMaterialStock   FoodType = "material-stock"
	FoodTypeIngredientStock FoodType = "ingredient-stock"
)

// Tier is one of the four BOM levels, ordered leaf to root. Cost changes
// propagate strictly upward: material -> ingredient -> base item -> product.
type Tier int

const (
	TierMaterial Tier = iota
	TierIngredient
	TierBaseItem
	TierProduct
)

// FoodType returns the storage partition for entities of this tier.
func (t Tier) FoodType() FoodType {
	switch t {
	case TierMaterial:
		return FoodTypeMaterial
	case TierIngredient:
		return FoodTypeIngredient
	case TierBaseItem:
		return FoodTypeBaseItem
	case TierProduct:
		return FoodTypeProduct
	}
	return ""
}

func (t Tier) String() string {
	return string(t.FoodType())
}

// TierOf maps a food type back to its BOM tier. The second return is false
// for non-tier partitions such as wholesalers and stock shadows.
func TierOf(ft FoodType) (Tier, bool) {
	switch ft {
	case FoodTypeMaterial:
		return TierMaterial, true
	case FoodTypeIngredient:
		return TierIngredient, true
	case FoodTypeBaseItem:
		return TierBaseItem, true
	case FoodTypeProduct:
		return TierProduct, true
	}
	return 0, false
}
