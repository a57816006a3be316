package domain

// Submitted entity attributes arrive flat and are nested into cost-basis
// groups when the record is built. Related lists are carried through on
// update so a full-record put does not lose the back-references.

type MaterialInput struct {
	ID                int    `json:"id,omitempty"`
	WholesalerID      string `json:"wholesaler_id,omitempty"`
	Name              string `json:"name,omitempty"`
	PricePerOrder     string `json:"price_per_order,omitempty"`
	AmountPerOrder    string `json:"amount_per_order,omitempty"`
	OrderUnit         string `json:"order_unit,omitempty"`
	CountPerOrder     string `json:"count_per_order,omitempty"`
	CountUnit         string `json:"count_unit,omitempty"`
	MeasurePerOrder   string `json:"measure_per_order,omitempty"`
	MeasureUnit       string `json:"measure_unit,omitempty"`
	MinimumAmount     string `json:"minimum_amount,omitempty"`
	MinimumAmountUnit string `json:"minimum_amount_unit,omitempty"`
	ProperAmount      string `json:"proper_amount,omitempty"`
	ProperAmountUnit  string `json:"proper_amount_unit,omitempty"`

	RelatedIngredientList []BackReference `json:"related_ingredient_list,omitempty"`
	RelatedBaseItemList   []BackReference `json:"related_base_item_list,omitempty"`
}

// Entity builds the persisted material record.
func (in MaterialInput) Entity(shopName string) *Material {
	return &Material{
		ID:            in.ID,
		ShopName:      shopName,
		WholesalerID:  in.WholesalerID,
		Name:          in.Name,
		PricePerOrder: in.PricePerOrder,
		Order:         OrderBasis{AmountPerOrder: in.AmountPerOrder, OrderUnit: in.OrderUnit},
		Count:         CountBasis{CountPerOrder: in.CountPerOrder, CountUnit: in.CountUnit},
		Measure:       OrderMeasure{MeasurePerOrder: in.MeasurePerOrder, MeasureUnit: in.MeasureUnit},
		Minimum:       MinimumAmount{MinimumAmount: in.MinimumAmount, MinimumAmountUnit: in.MinimumAmountUnit},
		Proper:        ProperAmount{ProperAmount: in.ProperAmount, ProperAmountUnit: in.ProperAmountUnit},

		RelatedIngredientList: in.RelatedIngredientList,
		RelatedBaseItemList:   in.RelatedBaseItemList,

		IsActive: true,
	}
}

// CostBasis returns the submitted price-per-order over measure-per-order.
func (in MaterialInput) CostBasis() CostBasis {
	return CostBasis{PricePerUnit: Num(in.PricePerOrder), UnitsPerBasis: Num(in.MeasurePerOrder)}
}

type IngredientInput struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	OmittedName       string `json:"omitted_name,omitempty"`
	PreparationType   string `json:"preparation_type,omitempty"`
	AmountPerPrepare  string `json:"amount_per_prepare,omitempty"`
	PrepareUnit       string `json:"prepare_unit,omitempty"`
	MeasurePerPrepare string `json:"measure_per_prepare,omitempty"`
	MeasureUnit       string `json:"measure_unit,omitempty"`
	MinimumAmount     string `json:"minimum_amount,omitempty"`
	MinimumAmountUnit string `json:"minimum_amount_unit,omitempty"`
	ProperAmount      string `json:"proper_amount,omitempty"`
	ProperAmountUnit  string `json:"proper_amount_unit,omitempty"`

	RelatedBaseItemList []BackReference `json:"related_base_item_list,omitempty"`
	RelatedProductList  []BackReference `json:"related_product_list,omitempty"`
}

func (in IngredientInput) Entity(shopName string) *Ingredient {
	return &Ingredient{
		ID:              in.ID,
		ShopName:        shopName,
		Name:            in.Name,
		OmittedName:     in.OmittedName,
		PreparationType: in.PreparationType,
		Prepare:         PrepareBasis{AmountPerPrepare: in.AmountPerPrepare, PrepareUnit: in.PrepareUnit},
		Measure:         PrepareMeasure{MeasurePerPrepare: in.MeasurePerPrepare, MeasureUnit: in.MeasureUnit},
		Minimum:         MinimumAmount{MinimumAmount: in.MinimumAmount, MinimumAmountUnit: in.MinimumAmountUnit},
		Proper:          ProperAmount{ProperAmount: in.ProperAmount, ProperAmountUnit: in.ProperAmountUnit},

		RelatedBaseItemList: in.RelatedBaseItemList,
		RelatedProductList:  in.RelatedProductList,

		IsActive: true,
	}
}

type BaseItemInput struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	AmountPerPrepare  string `json:"amount_per_prepare,omitempty"`
	PrepareUnit       string `json:"prepare_unit,omitempty"`
	MeasurePerPrepare string `json:"measure_per_prepare,omitempty"`
	MeasureUnit       string `json:"measure_unit,omitempty"`
	MinimumAmount     string `json:"minimum_amount,omitempty"`
	MinimumAmountUnit string `json:"minimum_amount_unit,omitempty"`
	ProperAmount      string `json:"proper_amount,omitempty"`
	ProperAmountUnit  string `json:"proper_amount_unit,omitempty"`
	MenuType          string `json:"menu_type,omitempty"`
	ProductType1      string `json:"product_type_1,omitempty"`
	ProductType2      string `json:"product_type_2,omitempty"`

	RelatedProductList []BackReference `json:"related_product_list,omitempty"`
}

func (in BaseItemInput) Entity(shopName string) *BaseItem {
	return &BaseItem{
		ID:           in.ID,
		ShopName:     shopName,
		Name:         in.Name,
		Prepare:      PrepareBasis{AmountPerPrepare: in.AmountPerPrepare, PrepareUnit: in.PrepareUnit},
		Measure:      PrepareMeasure{MeasurePerPrepare: in.MeasurePerPrepare, MeasureUnit: in.MeasureUnit},
		Minimum:      MinimumAmount{MinimumAmount: in.MinimumAmount, MinimumAmountUnit: in.MinimumAmountUnit},
		Proper:       ProperAmount{ProperAmount: in.ProperAmount, ProperAmountUnit: in.ProperAmountUnit},
		MenuType:     in.MenuType,
		ProductType1: in.ProductType1,
		ProductType2: in.ProductType2,

		RelatedProductList: in.RelatedProductList,

		IsActive: true,
	}
}

type ProductInput struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	MenuType     string `json:"menu_type,omitempty"`
	ProductType1 string `json:"product_type_1,omitempty"`
	ProductType2 string `json:"product_type_2,omitempty"`
}

func (in ProductInput) Entity(shopName string) *Product {
	return &Product{
		ID:           in.ID,
		ShopName:     shopName,
		Name:         in.Name,
		MenuType:     in.MenuType,
		ProductType1: in.ProductType1,
		ProductType2: in.ProductType2,

		IsActive: true,
	}
}

type WholesalerInput struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (in WholesalerInput) Entity(shopName string) *Wholesaler {
	return &Wholesaler{ID: in.ID, ShopName: shopName, Name: in.Name, IsActive: true}
}
