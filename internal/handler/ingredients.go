package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tacocloud/web/internal/enum"
	"github.com/tacocloud/web/internal/taco"
)

// IngredientCatalog defines the catalog lookups needed by ingredient handlers.
// Satisfied by *catalog.Catalog.
type IngredientCatalog interface {
	List(ingredientType string) []taco.Ingredient
	ByID(id string) (taco.Ingredient, bool)
}

// IngredientHandler serves the read-only ingredient API.
type IngredientHandler struct {
	catalog IngredientCatalog
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(catalog IngredientCatalog) *IngredientHandler {
	return &IngredientHandler{catalog: catalog}
}

// RegisterRoutes registers ingredient endpoints.
// Expected to be mounted at /api/ingredients
func (h *IngredientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List returns every ingredient, or those of ?type= (case-insensitive).
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	typ := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type")))
	if typ != "" && !enum.IsIngredientType(typ) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient type"})
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.List(typ))
}

// Get returns a single ingredient by id.
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	ing, ok := h.catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ingredient not found"})
		return
	}
	writeJSON(w, http.StatusOK, ing)
}
