package domain

// RecipeLine is one BOM edge: a parent's requirement on a child entity one
// tier down. Cost is derived, recomputed whenever the child's cost basis or
// the line's amount/active flag changes. Amounts and costs are persisted as
// decimal strings; parse only at the storage boundary (see Num/Str).
type RecipeLine struct {
	ID int `json:"id"`
	// FoodType discriminates child tiers on mixed recipes (base items mix
	// ingredient and material lines, products mix ingredient and base-item
	// lines). Empty on single-tier recipes.
	FoodType    FoodType `json:"food_type,omitempty"`
	Name        string   `json:"name,omitempty"`
	Amount      string   `json:"amount,omitempty"`
	MeasureUnit string   `json:"measure_unit,omitempty"`
	Cost        string   `json:"cost,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// BackReference is the inverse of a RecipeLine, embedded in the child
// entity's related_<parentType>_list. For every active recipe line
// (parent -> child) the child carries exactly one active back-reference with
// a matching parent id; the reconciler keeps the two in step.
type BackReference struct {
	ID              int    `json:"id"`
	Name            string `json:"name,omitempty"`
	Amount          string `json:"amount,omitempty"`
	MeasureUnit     string `json:"measure_unit,omitempty"`
	PreparationType string `json:"preparation_type,omitempty"`
	IsActive        bool   `json:"is_active"`
}
