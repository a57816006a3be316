package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// FoodRequest is the request envelope shared by every catalog operation.
type FoodRequest struct {
	FoodType  string          `json:"food_type" validate:"required"`
	Operation string          `json:"operation" validate:"required"`
	ShopName  string          `json:"shop_name" validate:"required"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// UpdatedEntities reports which entities an update's cost cascade touched.
type UpdatedEntities struct {
	Ingredients []int `json:"ingredients"`
	BaseItems   []int `json:"base_items"`
	Products    []int `json:"products"`
}

func updatedFrom(res *propagation.Result) *UpdatedEntities {
	if res == nil {
		return nil
	}
	return &UpdatedEntities{
		Ingredients: res.Ingredients,
		BaseItems:   res.BaseItems,
		Products:    res.Products,
	}
}

// CatalogService is the catalog surface the food endpoint dispatches to.
type CatalogService interface {
	RegisterMaterial(ctx context.Context, cmd domain.MaterialCommand) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, cmd domain.MaterialCommand) (*domain.Material, *propagation.Result, error)
	FindAllMaterials(ctx context.Context, shopName string) ([]*domain.Material, error)

	RegisterIngredient(ctx context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, *propagation.Result, error)
	FindAllIngredients(ctx context.Context, shopName string) ([]*domain.Ingredient, error)

	RegisterBaseItem(ctx context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, error)
	UpdateBaseItem(ctx context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, *propagation.Result, error)
	FindAllBaseItems(ctx context.Context, shopName string) ([]*domain.BaseItem, error)

	RegisterProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error)
	UpdateProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error)
	FindAllProducts(ctx context.Context, shopName string) ([]*domain.Product, error)

	RegisterWholesaler(ctx context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error)
	UpdateWholesaler(ctx context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error)
	FindAllWholesalers(ctx context.Context, shopName string) ([]*domain.Wholesaler, error)
}

type FoodHandler struct {
	catalog  CatalogService
	validate *validator.Validate
}

func NewFoodHandler(catalog CatalogService) *FoodHandler {
	return &FoodHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// HandleFood decodes the envelope and dispatches on (food_type, operation).
func (h *FoodHandler) HandleFood(w http.ResponseWriter, r *http.Request) {
	var req FoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}

	cmd, err := domain.ParseCommand(req.FoodType, req.Operation, req.ShopName, req.Payload)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	ctx := r.Context()
	switch c := cmd.(type) {
	case domain.MaterialCommand:
		h.handleMaterial(ctx, w, r, c)
	case domain.IngredientCommand:
		h.handleIngredient(ctx, w, r, c)
	case domain.BaseItemCommand:
		h.handleBaseItem(ctx, w, r, c)
	case domain.ProductCommand:
		h.handleProduct(ctx, w, r, c)
	case domain.WholesalerCommand:
		h.handleWholesaler(ctx, w, r, c)
	default:
		respondError(w, http.StatusBadRequest, ErrMsgUnknownFoodTypeErr)
	}
}

func (h *FoodHandler) handleMaterial(ctx context.Context, w http.ResponseWriter, r *http.Request, cmd domain.MaterialCommand) {
	type response struct {
		Material *domain.Material `json:"material,omitempty"`
		Updated  *UpdatedEntities `json:"updated,omitempty"`
	}
	type listResponse struct {
		MaterialList []*domain.Material `json:"material_list"`
	}

	switch cmd.Op {
	case domain.OperationRegister:
		m, err := h.catalog.RegisterMaterial(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, response{Material: m})
	case domain.OperationUpdate:
		m, res, err := h.catalog.UpdateMaterial(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{Material: m, Updated: updatedFrom(res)})
	case domain.OperationFindAll:
		list, err := h.catalog.FindAllMaterials(ctx, cmd.ShopName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{MaterialList: list})
	}
}

func (h *FoodHandler) handleIngredient(ctx context.Context, w http.ResponseWriter, r *http.Request, cmd domain.IngredientCommand) {
	type response struct {
		Ingredient *domain.Ingredient `json:"ingredient,omitempty"`
		Updated    *UpdatedEntities   `json:"updated,omitempty"`
	}
	type listResponse struct {
		IngredientList []*domain.Ingredient `json:"ingredient_list"`
	}

	switch cmd.Op {
	case domain.OperationRegister:
		i, err := h.catalog.RegisterIngredient(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, response{Ingredient: i})
	case domain.OperationUpdate:
		i, res, err := h.catalog.UpdateIngredient(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{Ingredient: i, Updated: updatedFrom(res)})
	case domain.OperationFindAll:
		list, err := h.catalog.FindAllIngredients(ctx, cmd.ShopName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{IngredientList: list})
	}
}

func (h *FoodHandler) handleBaseItem(ctx context.Context, w http.ResponseWriter, r *http.Request, cmd domain.BaseItemCommand) {
	type response struct {
		BaseItem *domain.BaseItem `json:"base_item,omitempty"`
		Updated  *UpdatedEntities `json:"updated,omitempty"`
	}
	type listResponse struct {
		BaseItemList []*domain.BaseItem `json:"base_item_list"`
	}

	switch cmd.Op {
	case domain.OperationRegister:
		b, err := h.catalog.RegisterBaseItem(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, response{BaseItem: b})
	case domain.OperationUpdate:
		b, res, err := h.catalog.UpdateBaseItem(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{BaseItem: b, Updated: updatedFrom(res)})
	case domain.OperationFindAll:
		list, err := h.catalog.FindAllBaseItems(ctx, cmd.ShopName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{BaseItemList: list})
	}
}

func (h *FoodHandler) handleProduct(ctx context.Context, w http.ResponseWriter, r *http.Request, cmd domain.ProductCommand) {
	type response struct {
		Product *domain.Product `json:"product,omitempty"`
	}
	type listResponse struct {
		ProductList []*domain.Product `json:"product_list"`
	}

	switch cmd.Op {
	case domain.OperationRegister:
		p, err := h.catalog.RegisterProduct(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, response{Product: p})
	case domain.OperationUpdate:
		p, err := h.catalog.UpdateProduct(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{Product: p})
	case domain.OperationFindAll:
		list, err := h.catalog.FindAllProducts(ctx, cmd.ShopName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{ProductList: list})
	}
}

func (h *FoodHandler) handleWholesaler(ctx context.Context, w http.ResponseWriter, r *http.Request, cmd domain.WholesalerCommand) {
	type response struct {
		Wholesaler *domain.Wholesaler `json:"wholesaler,omitempty"`
	}
	type listResponse struct {
		WholesalerList []*domain.Wholesaler `json:"wholesaler_list"`
	}

	switch cmd.Op {
	case domain.OperationRegister:
		wh, err := h.catalog.RegisterWholesaler(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, response{Wholesaler: wh})
	case domain.OperationUpdate:
		wh, err := h.catalog.UpdateWholesaler(ctx, cmd)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{Wholesaler: wh})
	case domain.OperationFindAll:
		list, err := h.catalog.FindAllWholesalers(ctx, cmd.ShopName)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{WholesalerList: list})
	}
}
