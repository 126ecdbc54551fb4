package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/enum"
	"github.com/tacocloud/web/internal/middleware"
	"github.com/tacocloud/web/internal/service"
	"github.com/tacocloud/web/internal/taco"
	"github.com/tacocloud/web/internal/web"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CurrentOrder(sessionID uuid.UUID) (taco.Order, error)
	SubmitOrder(sessionID uuid.UUID, delivery taco.Delivery) (taco.Order, error)
}

// OrderHandler handles the order form.
type OrderHandler struct {
	svc      OrderServicer
	renderer PageRenderer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, renderer PageRenderer) *OrderHandler {
	return &OrderHandler{svc: svc, renderer: renderer}
}

// RegisterRoutes registers order endpoints.
// Expected to be mounted at /orders inside the session-scoped group.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/current", h.Current)
	r.Post("/", h.Submit)
}

type orderPage struct {
	Order  taco.Order
	Form   taco.Delivery
	Errors map[string]string
}

// Current renders the order form for the session's order. An order with no
// tacos cannot be submitted, so the browser is sent to the design form; a
// browser without a session has no tacos yet.
func (h *OrderHandler) Current(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/design", http.StatusFound)
		return
	}

	order, err := h.svc.CurrentOrder(sid)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			http.Redirect(w, r, "/design", http.StatusFound)
			return
		}
		log.Printf("ERROR: current order: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if order.State() == enum.OrderStateEmpty {
		http.Redirect(w, r, "/design", http.StatusFound)
		return
	}

	render(w, h.renderer, http.StatusOK, web.PageOrderForm, orderPage{Order: order, Form: order.Delivery})
}

// Submit places the session's order. Invalid delivery or payment details
// re-render the form with one message per failing field.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	delivery := taco.Delivery{
		DeliveryName:   r.PostForm.Get("deliveryName"),
		DeliveryStreet: r.PostForm.Get("deliveryStreet"),
		DeliveryCity:   r.PostForm.Get("deliveryCity"),
		DeliveryState:  r.PostForm.Get("deliveryState"),
		DeliveryZip:    r.PostForm.Get("deliveryZip"),
		CCNumber:       r.PostForm.Get("ccNumber"),
		CCExpiration:   r.PostForm.Get("ccExpiration"),
		CCCVV:          r.PostForm.Get("ccCVV"),
	}

	_, err := h.svc.SubmitOrder(sid, delivery)
	if err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var verr *taco.ValidationError
	switch {
	case errors.As(err, &verr):
		order, err := h.svc.CurrentOrder(sid)
		if err != nil {
			log.Printf("ERROR: reload order: %v", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		render(w, h.renderer, http.StatusOK, web.PageOrderForm, orderPage{
			Order:  order,
			Form:   delivery,
			Errors: verr.ByField(),
		})
	case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrSessionNotFound):
		http.Redirect(w, r, "/design", http.StatusFound)
	default:
		log.Printf("ERROR: submit order: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
