// Package taco holds the Taco Cloud domain model: catalog ingredients, the
// tacos a customer designs and the order they accumulate into.
package taco

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/enum"
)

// Ingredient is a catalog entry. Values are never mutated after the catalog
// is built.
type Ingredient struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Taco is a named selection of ingredients.
type Taco struct {
	Name        string       `json:"name" form:"name" validate:"min=5"`
	Ingredients []Ingredient `json:"ingredients" form:"ingredients" validate:"min=1"`
}

// IngredientIDs returns the ids of the taco's ingredients in order.
func (t Taco) IngredientIDs() []string {
	ids := make([]string, len(t.Ingredients))
	for i, ing := range t.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}

// Delivery holds the delivery and payment fields of an order form.
type Delivery struct {
	DeliveryName   string `json:"delivery_name" form:"deliveryName" validate:"notblank"`
	DeliveryStreet string `json:"delivery_street" form:"deliveryStreet" validate:"notblank"`
	DeliveryCity   string `json:"delivery_city" form:"deliveryCity" validate:"notblank"`
	DeliveryState  string `json:"delivery_state" form:"deliveryState" validate:"notblank"`
	DeliveryZip    string `json:"delivery_zip" form:"deliveryZip" validate:"notblank"`
	CCNumber       string `json:"cc_number" form:"ccNumber" validate:"credit_card"`
	CCExpiration   string `json:"cc_expiration" form:"ccExpiration" validate:"ccexpiry,ccnotexpired"`
	CCCVV          string `json:"cc_cvv" form:"ccCVV" validate:"cvv"`
}

// Order accumulates tacos across a session. ID and PlacedAt are only set
// once the order has been submitted.
type Order struct {
	ID       uuid.UUID `json:"id"`
	Tacos    []Taco    `json:"tacos"`
	PlacedAt time.Time `json:"placed_at"`
	Delivery
}

// AddTaco appends a taco. Tacos are never removed or edited once added.
func (o *Order) AddTaco(t Taco) {
	o.Tacos = append(o.Tacos, t)
}

// State reports where the order is in its session lifecycle.
func (o *Order) State() string {
	switch {
	case !o.PlacedAt.IsZero():
		return enum.OrderStateSubmitted
	case len(o.Tacos) == 0:
		return enum.OrderStateEmpty
	default:
		return enum.OrderStateBuilding
	}
}

// Clone returns a copy that shares no slices with o.
func (o *Order) Clone() Order {
	c := *o
	c.Tacos = make([]Taco, len(o.Tacos))
	for i, t := range o.Tacos {
		c.Tacos[i] = Taco{
			Name:        t.Name,
			Ingredients: append([]Ingredient(nil), t.Ingredients...),
		}
	}
	return c
}

// MaskCard hides all but the last four digits of a card number.
func MaskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
