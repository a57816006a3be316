package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/stock"
)

// StockRequest is the request envelope for stock operations.
type StockRequest struct {
	FoodType  string          `json:"food_type" validate:"required"`
	Operation string          `json:"operation" validate:"required"`
	ShopName  string          `json:"shop_name" validate:"required"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// StockService is the stock surface the endpoint dispatches to.
type StockService interface {
	RecordEntry(ctx context.Context, shopName string, entry stock.Entry) (*domain.Stock, error)
	FindAll(ctx context.Context, shopName string, foodType domain.FoodType) ([]*domain.Stock, error)
}

type StockHandler struct {
	stocks   StockService
	validate *validator.Validate
}

func NewStockHandler(stocks StockService) *StockHandler {
	return &StockHandler{
		stocks:   stocks,
		validate: validator.New(),
	}
}

// HandleStock records a stock count or lists the shadows of one tier.
func (h *StockHandler) HandleStock(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}

	type response struct {
		Stock *domain.Stock `json:"stock,omitempty"`
	}
	type listResponse struct {
		StockList []*domain.Stock `json:"stock_list"`
	}

	ctx := r.Context()
	switch domain.Operation(req.Operation) {
	case domain.OperationRegister:
		var entry stock.Entry
		if len(req.Payload) == 0 || json.Unmarshal(req.Payload, &entry) != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		entry.FoodType = domain.FoodType(req.FoodType)
		if err := h.validate.Struct(entry); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		shadow, err := h.stocks.RecordEntry(ctx, req.ShopName, entry)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, response{Stock: shadow})
	case domain.OperationFindAll:
		list, err := h.stocks.FindAll(ctx, req.ShopName, domain.FoodType(req.FoodType))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{StockList: list})
	default:
		respondError(w, http.StatusBadRequest, ErrMsgUnknownOperationErr)
	}
}
