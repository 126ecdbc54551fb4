package enum

// ── Ingredient types (catalog categories) ──

const (
	IngredientWrap    = "WRAP"
	IngredientProtein = "PROTEIN"
	IngredientVeggies = "VEGGIES"
	IngredientCheese  = "CHEESE"
	IngredientSauce   = "SAUCE"
)

// IngredientTypes lists the categories in display order.
var IngredientTypes = []string{
	IngredientWrap,
	IngredientProtein,
	IngredientVeggies,
	IngredientCheese,
	IngredientSauce,
}

// IsIngredientType reports whether t names a known category.
func IsIngredientType(t string) bool {
	for _, known := range IngredientTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ── Order states (session-scoped, not stored) ──

const (
	OrderStateEmpty     = "EMPTY"
	OrderStateBuilding  = "BUILDING"
	OrderStateSubmitted = "SUBMITTED"
)

// ── Kitchen feed event types ──

const (
	EventOrderPlaced = "order.placed"
)
