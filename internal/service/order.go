package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tacocloud/web/internal/enum"
	"github.com/tacocloud/web/internal/session"
	"github.com/tacocloud/web/internal/taco"
	"github.com/tacocloud/web/internal/ws"
)

// Errors returned by the order service.
var (
	ErrEmptyOrder      = errors.New("order has no tacos")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionStore holds the in-progress order of each browser session.
// Satisfied by *session.Store.
type SessionStore interface {
	Order(id uuid.UUID) (taco.Order, error)
	Update(id uuid.UUID, fn func(o *taco.Order) error) error
}

// IngredientResolver turns submitted ingredient ids into catalog entries.
// Satisfied by *catalog.Catalog.
type IngredientResolver interface {
	Resolve(ids []string) []taco.Ingredient
}

// Feed receives placed-order events. Satisfied by *ws.Hub.
type Feed interface {
	Broadcast(event ws.Event)
}

// TacoForm is the raw design form submission.
type TacoForm struct {
	Name        string
	Ingredients []string
}

// OrderService drives the session order through
// EMPTY → BUILDING → SUBMITTED.
type OrderService struct {
	sessions  SessionStore
	resolver  IngredientResolver
	validator *taco.Validator
	feed      Feed
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewOrderService creates a new OrderService. feed may be nil.
func NewOrderService(sessions SessionStore, resolver IngredientResolver, validator *taco.Validator, feed Feed) *OrderService {
	return &OrderService{
		sessions:  sessions,
		resolver:  resolver,
		validator: validator,
		feed:      feed,
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// BindTaco converts a design form into a taco: markup is stripped from the
// name and unknown ingredient ids are dropped.
func (s *OrderService) BindTaco(form TacoForm) taco.Taco {
	name := html.UnescapeString(s.policy.Sanitize(form.Name))
	return taco.Taco{
		Name:        strings.TrimSpace(name),
		Ingredients: s.resolver.Resolve(form.Ingredients),
	}
}

// DesignTaco validates the submitted taco and appends it to the session's
// order. A *taco.ValidationError leaves the order untouched.
func (s *OrderService) DesignTaco(sessionID uuid.UUID, form TacoForm) (taco.Taco, error) {
	t := s.BindTaco(form)
	if err := s.validator.ValidateTaco(t); err != nil {
		return t, err
	}

	err := s.sessions.Update(sessionID, func(o *taco.Order) error {
		o.AddTaco(t)
		return nil
	})
	if err != nil {
		return t, sessionErr(err)
	}

	log.Printf("Processing taco: name=%q ingredients=%v", t.Name, t.IngredientIDs())
	return t, nil
}

// CurrentOrder returns a copy of the session's order.
func (s *OrderService) CurrentOrder(sessionID uuid.UUID) (taco.Order, error) {
	o, err := s.sessions.Order(sessionID)
	if err != nil {
		return taco.Order{}, sessionErr(err)
	}
	return o, nil
}

// SubmitOrder validates delivery and payment details, places the order and
// clears the session's order. On any error the session is left as it was.
func (s *OrderService) SubmitOrder(sessionID uuid.UUID, delivery taco.Delivery) (taco.Order, error) {
	var placed taco.Order
	err := s.sessions.Update(sessionID, func(o *taco.Order) error {
		if o.State() != enum.OrderStateBuilding {
			return ErrEmptyOrder
		}
		if err := s.validator.ValidateDelivery(delivery); err != nil {
			return err
		}

		placed = o.Clone()
		placed.Delivery = delivery
		placed.ID = uuid.New()
		placed.PlacedAt = s.now()

		*o = taco.Order{}
		return nil
	})
	if err != nil {
		return taco.Order{}, sessionErr(err)
	}

	log.Printf("Order submitted: id=%s tacos=%d deliveryName=%q card=%s",
		placed.ID, len(placed.Tacos), placed.DeliveryName, taco.MaskCard(placed.CCNumber))
	s.publish(placed)
	return placed, nil
}

// --- Kitchen feed ---

type placedTaco struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

type orderPlacedPayload struct {
	OrderID      uuid.UUID    `json:"order_id"`
	DeliveryName string       `json:"delivery_name"`
	Card         string       `json:"card"`
	Tacos        []placedTaco `json:"tacos"`
	PlacedAt     time.Time    `json:"placed_at"`
}

func (s *OrderService) publish(o taco.Order) {
	if s.feed == nil {
		return
	}
	event, err := orderPlacedEvent(o)
	if err != nil {
		log.Printf("ERROR: build order event: %v", err)
		return
	}
	s.feed.Broadcast(event)
}

func orderPlacedEvent(o taco.Order) (ws.Event, error) {
	payload := orderPlacedPayload{
		OrderID:      o.ID,
		DeliveryName: o.DeliveryName,
		Card:         taco.MaskCard(o.CCNumber),
		Tacos:        make([]placedTaco, len(o.Tacos)),
		PlacedAt:     o.PlacedAt,
	}
	for i, t := range o.Tacos {
		payload.Tacos[i] = placedTaco{Name: t.Name, Ingredients: t.IngredientIDs()}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ws.Event{}, fmt.Errorf("marshal payload: %w", err)
	}
	return ws.Event{Type: enum.EventOrderPlaced, Payload: raw}, nil
}

func sessionErr(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
