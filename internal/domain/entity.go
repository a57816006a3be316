package domain

// Nested cost-basis groups, persisted exactly as the records store them.
// Empty strings are dropped on write via omitempty; that is the generic
// "empty string becomes unset" sanitation applied to every persisted object
// (is_active/is_deleted are plain bools and always serialized).

type OrderBasis struct {
	AmountPerOrder string `json:"amount_per_order,omitempty"`
	OrderUnit      string `json:"order_unit,omitempty"`
}

type CountBasis struct {
	CountPerOrder string `json:"count_per_order,omitempty"`
	CountUnit     string `json:"count_unit,omitempty"`
}

// OrderMeasure is the measurable quantity one order of a material yields.
type OrderMeasure struct {
	MeasurePerOrder string `json:"measure_per_order,omitempty"`
	MeasureUnit     string `json:"measure_unit,omitempty"`
}

type PrepareBasis struct {
	AmountPerPrepare string `json:"amount_per_prepare,omitempty"`
	PrepareUnit      string `json:"prepare_unit,omitempty"`
}

// PrepareMeasure is the measurable quantity one preparation run yields.
type PrepareMeasure struct {
	MeasurePerPrepare string `json:"measure_per_prepare,omitempty"`
	MeasureUnit       string `json:"measure_unit,omitempty"`
}

type MinimumAmount struct {
	MinimumAmount     string `json:"minimum_amount,omitempty"`
	MinimumAmountUnit string `json:"minimum_amount_unit,omitempty"`
}

type ProperAmount struct {
	ProperAmount     string `json:"proper_amount,omitempty"`
	ProperAmountUnit string `json:"proper_amount_unit,omitempty"`
}

// Material is the leaf tier: a wholesale good bought per order.
type Material struct {
	ID            int           `json:"id"`
	ShopName      string        `json:"shop_name,omitempty"`
	WholesalerID  string        `json:"wholesaler_id,omitempty"`
	Name          string        `json:"name,omitempty"`
	PricePerOrder string        `json:"price_per_order,omitempty"`
	Order         OrderBasis    `json:"order"`
	Count         CountBasis    `json:"count"`
	Measure       OrderMeasure  `json:"measure"`
	Minimum       MinimumAmount `json:"minimum"`
	Proper        ProperAmount  `json:"proper"`

	RelatedIngredientList []BackReference `json:"related_ingredient_list"`
	RelatedBaseItemList   []BackReference `json:"related_base_item_list"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`
}

// CostBasis returns the material's price-per-order over measure-per-order.
func (m *Material) CostBasis() CostBasis {
	return CostBasis{
		PricePerUnit:  Num(m.PricePerOrder),
		UnitsPerBasis: Num(m.Measure.MeasurePerOrder),
	}
}

// PreparationTypeProcessMaterial marks ingredients prepared from materials.
// Only these carry a recipe and a computed price_per_prepare.
const PreparationTypeProcessMaterial = "process_material"

// Ingredient is a prepared good with a recipe of materials.
type Ingredient struct {
	ID              int            `json:"id"`
	ShopName        string         `json:"shop_name,omitempty"`
	Name            string         `json:"name,omitempty"`
	OmittedName     string         `json:"omitted_name,omitempty"`
	PreparationType string         `json:"preparation_type,omitempty"`
	PricePerPrepare string         `json:"price_per_prepare,omitempty"`
	Prepare         PrepareBasis   `json:"prepare"`
	Measure         PrepareMeasure `json:"measure"`
	Minimum         MinimumAmount  `json:"minimum"`
	Proper          ProperAmount   `json:"proper"`

	RequiredMaterialList []RecipeLine `json:"required_material_list"`

	RelatedBaseItemList []BackReference `json:"related_base_item_list"`
	RelatedProductList  []BackReference `json:"related_product_list"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`
}

func (i *Ingredient) CostBasis() CostBasis {
	return CostBasis{
		PricePerUnit:  Num(i.PricePerPrepare),
		UnitsPerBasis: Num(i.Measure.MeasurePerPrepare),
	}
}

// BaseItem is a semi-finished good with a mixed recipe of ingredients and
// materials.
type BaseItem struct {
	ID              int            `json:"id"`
	ShopName        string         `json:"shop_name,omitempty"`
	Name            string         `json:"name,omitempty"`
	PricePerPrepare string         `json:"price_per_prepare,omitempty"`
	Prepare         PrepareBasis   `json:"prepare"`
	Measure         PrepareMeasure `json:"measure"`
	Minimum         MinimumAmount  `json:"minimum"`
	Proper          ProperAmount   `json:"proper"`
	MenuType        string         `json:"menu_type,omitempty"`
	ProductType1    string         `json:"product_type_1,omitempty"`
	ProductType2    string         `json:"product_type_2,omitempty"`

	RequiredIngredientList []RecipeLine `json:"required_ingredient_list"`
	RequiredMaterialList   []RecipeLine `json:"required_material_list"`

	RelatedProductList []BackReference `json:"related_product_list"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`
}

func (b *BaseItem) CostBasis() CostBasis {
	return CostBasis{
		PricePerUnit:  Num(b.PricePerPrepare),
		UnitsPerBasis: Num(b.Measure.MeasurePerPrepare),
	}
}

// Product is the top tier: a sold good with a mixed recipe of ingredients
// and base items. Products have no dependents, so no related list.
type Product struct {
	ID           int    `json:"id"`
	ShopName     string `json:"shop_name,omitempty"`
	Name         string `json:"name,omitempty"`
	Cost         string `json:"cost,omitempty"`
	MenuType     string `json:"menu_type,omitempty"`
	ProductType1 string `json:"product_type_1,omitempty"`
	ProductType2 string `json:"product_type_2,omitempty"`

	RequiredIngredientList []RecipeLine `json:"required_ingredient_list"`
	RequiredBaseItemList   []RecipeLine `json:"required_base_item_list"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`
}

// Wholesaler is a plain registry record; it takes no part in costing.
type Wholesaler struct {
	ID        int    `json:"id"`
	ShopName  string `json:"shop_name,omitempty"`
	Name      string `json:"name,omitempty"`
	IsActive  bool   `json:"is_active"`
	IsDeleted bool   `json:"is_deleted"`
}

// StockMeasure carries the measured on-hand amount; which field is used
// depends on whether the shadow tracks a material or an ingredient.
type StockMeasure struct {
	MeasurePerOrder   string `json:"measure_per_order,omitempty"`
	MeasurePerPrepare string `json:"measure_per_prepare,omitempty"`
	MeasureUnit       string `json:"measure_unit,omitempty"`
}

// Stock is the shadow record tracking on-hand amounts for a material or
// ingredient. Created empty at registration with just the units; stock
// entries fill in the amounts.
type Stock struct {
	ID       int           `json:"id"`
	ShopName string        `json:"shop_name,omitempty"`
	FoodType FoodType      `json:"food_type"`
	Name     string        `json:"name,omitempty"`
	Order    OrderBasis    `json:"order"`
	Count    CountBasis    `json:"count"`
	Measure  StockMeasure  `json:"measure"`
	Prepare  PrepareBasis  `json:"prepare"`
	Minimum  MinimumAmount `json:"minimum"`
	Proper   ProperAmount  `json:"proper"`

	IsActive  bool `json:"is_active"`
	IsDeleted bool `json:"is_deleted"`
}
