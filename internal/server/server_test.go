package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/catalog"
	"github.com/neo0222/ftf-backoffice/internal/database/memory"
	"github.com/neo0222/ftf-backoffice/internal/handler"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
	"github.com/neo0222/ftf-backoffice/internal/repository"
	"github.com/neo0222/ftf-backoffice/internal/stock"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	foods := repository.NewFoods(store)
	stocks := stock.NewService(foods)
	catalogService := catalog.NewService(foods, backref.NewReconciler(store), propagation.NewService(foods), stocks)

	srv := NewServer(0, store, handler.NewFoodHandler(catalogService), handler.NewStockHandler(stocks))
	return srv.httpServer.Handler
}

func TestHealthRoutes(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMetricsRoute(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFoodRouteRegistersMaterial(t *testing.T) {
	h := newTestServer(t)

	body := `{
		"food_type": "material",
		"operation": "register",
		"shop_name": "demo",
		"payload": {"materialInfo": {"name": "tomato", "price_per_order": "100", "measure_per_order": "10"}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestSizeLimit(t *testing.T) {
	h := newTestServer(t)

	oversized := strings.Repeat("x", 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food", strings.NewReader(oversized))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
