package taco_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/enum"
	"github.com/tacocloud/web/internal/taco"
)

func TestOrderState(t *testing.T) {
	var o taco.Order
	if got := o.State(); got != enum.OrderStateEmpty {
		t.Errorf("new order: got %s, want %s", got, enum.OrderStateEmpty)
	}

	o.AddTaco(taco.Taco{Name: "Basic Taco"})
	if got := o.State(); got != enum.OrderStateBuilding {
		t.Errorf("after AddTaco: got %s, want %s", got, enum.OrderStateBuilding)
	}

	o.ID = uuid.New()
	o.PlacedAt = time.Now()
	if got := o.State(); got != enum.OrderStateSubmitted {
		t.Errorf("after placing: got %s, want %s", got, enum.OrderStateSubmitted)
	}
}

func TestOrderAddTaco_KeepsOrder(t *testing.T) {
	var o taco.Order
	o.AddTaco(taco.Taco{Name: "Basic Taco"})
	o.AddTaco(taco.Taco{Name: "Another Taco"})

	var names []string
	for _, tc := range o.Tacos {
		names = append(names, tc.Name)
	}
	if diff := cmp.Diff([]string{"Basic Taco", "Another Taco"}, names); diff != "" {
		t.Errorf("taco names mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderClone_IsIndependent(t *testing.T) {
	var o taco.Order
	o.AddTaco(taco.Taco{
		Name:        "Basic Taco",
		Ingredients: []taco.Ingredient{{ID: "FLTO", Name: "Flour Tortilla", Type: enum.IngredientWrap}},
	})
	o.DeliveryName = "Ima Hungry"

	c := o.Clone()
	c.AddTaco(taco.Taco{Name: "Another Taco"})
	c.Tacos[0].Ingredients[0].Name = "changed"
	c.DeliveryName = "changed"

	if len(o.Tacos) != 1 {
		t.Errorf("original tacos: got %d, want 1", len(o.Tacos))
	}
	if o.Tacos[0].Ingredients[0].Name != "Flour Tortilla" {
		t.Errorf("original ingredient mutated: %q", o.Tacos[0].Ingredients[0].Name)
	}
	if o.DeliveryName != "Ima Hungry" {
		t.Errorf("original delivery name mutated: %q", o.DeliveryName)
	}
}

func TestTacoIngredientIDs(t *testing.T) {
	tc := taco.Taco{Ingredients: []taco.Ingredient{{ID: "COTO"}, {ID: "CARN"}, {ID: "JACK"}}}
	if diff := cmp.Diff([]string{"COTO", "CARN", "JACK"}, tc.IngredientIDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskCard(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"4111111111111111", "************1111"},
		{"4111 1111 1111 1111", "************1111"},
		{"123", "***"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := taco.MaskCard(tt.in); got != tt.want {
			t.Errorf("MaskCard(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
