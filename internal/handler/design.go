package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/catalog"
	"github.com/tacocloud/web/internal/service"
	"github.com/tacocloud/web/internal/taco"
	"github.com/tacocloud/web/internal/web"
)

// TacoDesigner appends designed tacos to a session's order.
// Satisfied by *service.OrderService; narrow interface for testability.
type TacoDesigner interface {
	DesignTaco(sessionID uuid.UUID, form service.TacoForm) (taco.Taco, error)
}

// IngredientGroups provides the design form sections.
// Satisfied by *catalog.Catalog.
type IngredientGroups interface {
	Groups() []catalog.Group
}

// DesignHandler handles the taco design form.
type DesignHandler struct {
	designer TacoDesigner
	groups   IngredientGroups
	renderer PageRenderer
}

// NewDesignHandler creates a new DesignHandler.
func NewDesignHandler(designer TacoDesigner, groups IngredientGroups, renderer PageRenderer) *DesignHandler {
	return &DesignHandler{designer: designer, groups: groups, renderer: renderer}
}

// RegisterRoutes registers the design form endpoints.
// Expected to be mounted at /design inside the session-scoped group.
func (h *DesignHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Post("/", h.Process)
}

type designPage struct {
	Groups   []catalog.Group
	Selected map[string]bool
	Name     string
	Errors   map[string]string
}

// Show renders the empty design form.
func (h *DesignHandler) Show(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, http.StatusOK, web.PageDesign, designPage{Groups: h.groups.Groups()})
}

// Process validates a submitted taco. Valid tacos are added to the session
// order and the browser is sent to the order form; invalid ones re-render
// the design form with the submitted values.
func (h *DesignHandler) Process(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	form := service.TacoForm{
		Name:        r.PostForm.Get("name"),
		Ingredients: r.PostForm["ingredients"],
	}

	_, err := h.designer.DesignTaco(sid, form)
	if err != nil {
		var verr *taco.ValidationError
		switch {
		case errors.As(err, &verr):
			selected := make(map[string]bool, len(form.Ingredients))
			for _, id := range form.Ingredients {
				selected[id] = true
			}
			render(w, h.renderer, http.StatusOK, web.PageDesign, designPage{
				Groups:   h.groups.Groups(),
				Selected: selected,
				Name:     form.Name,
				Errors:   verr.ByField(),
			})
		case errors.Is(err, service.ErrSessionNotFound):
			http.Redirect(w, r, "/design", http.StatusFound)
		default:
			log.Printf("ERROR: design taco: %v", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/orders/current", http.StatusFound)
}
