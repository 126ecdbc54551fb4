package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tacocloud/web/internal/web"
)

// HomeHandler serves the welcome page.
type HomeHandler struct {
	renderer PageRenderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer PageRenderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// RegisterRoutes registers the home page on the given Chi router.
func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
}

// Home renders the static welcome page.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, http.StatusOK, web.PageHome, nil)
}
