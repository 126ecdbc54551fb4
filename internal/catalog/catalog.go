// Package catalog is the fixed ingredient catalog and the id → ingredient
// lookup used when binding design forms.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/tacocloud/web/internal/enum"
	"github.com/tacocloud/web/internal/taco"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Errors returned while building a catalog.
var (
	ErrDuplicateID    = errors.New("duplicate ingredient id")
	ErrUnknownType    = errors.New("unknown ingredient type")
	ErrMissingField   = errors.New("ingredient id and name are required")
	ErrMissingGroup   = errors.New("ingredient type has no group")
	ErrDuplicateGroup = errors.New("duplicate group")
)

// Group is one section of the design form.
type Group struct {
	Type        string            `yaml:"type"`
	Key         string            `yaml:"key"`
	Title       string            `yaml:"title"`
	Ingredients []taco.Ingredient `yaml:"-"`
}

type document struct {
	Groups      []Group           `yaml:"groups"`
	Ingredients []taco.Ingredient `yaml:"ingredients"`
}

// Catalog is built once and read-only afterwards; accessors return copies.
type Catalog struct {
	ingredients []taco.Ingredient
	byID        map[string]taco.Ingredient
	groups      []Group
}

// Default builds the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// MustDefault is Default for program start-up and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]taco.Ingredient, len(doc.Ingredients))}

	groupIdx := make(map[string]int, len(doc.Groups))
	for _, g := range doc.Groups {
		if !enum.IsIngredientType(g.Type) {
			return nil, fmt.Errorf("group %q: %w: %s", g.Key, ErrUnknownType, g.Type)
		}
		if _, dup := groupIdx[g.Type]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGroup, g.Type)
		}
		groupIdx[g.Type] = len(c.groups)
		c.groups = append(c.groups, Group{Type: g.Type, Key: g.Key, Title: g.Title})
	}

	for _, ing := range doc.Ingredients {
		if ing.ID == "" || ing.Name == "" {
			return nil, fmt.Errorf("%w: %+v", ErrMissingField, ing)
		}
		if !enum.IsIngredientType(ing.Type) {
			return nil, fmt.Errorf("ingredient %s: %w: %s", ing.ID, ErrUnknownType, ing.Type)
		}
		if _, dup := c.byID[ing.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, ing.ID)
		}
		idx, ok := groupIdx[ing.Type]
		if !ok {
			return nil, fmt.Errorf("ingredient %s: %w: %s", ing.ID, ErrMissingGroup, ing.Type)
		}
		c.byID[ing.ID] = ing
		c.ingredients = append(c.ingredients, ing)
		c.groups[idx].Ingredients = append(c.groups[idx].Ingredients, ing)
	}

	return c, nil
}

// List returns the ingredients of the given type in catalog order. An empty
// type returns every ingredient.
func (c *Catalog) List(ingredientType string) []taco.Ingredient {
	result := make([]taco.Ingredient, 0, len(c.ingredients))
	for _, ing := range c.ingredients {
		if ingredientType == "" || ing.Type == ingredientType {
			result = append(result, ing)
		}
	}
	return result
}

// Groups returns the design form sections in display order.
func (c *Catalog) Groups() []Group {
	groups := make([]Group, len(c.groups))
	for i, g := range c.groups {
		g.Ingredients = append([]taco.Ingredient(nil), g.Ingredients...)
		groups[i] = g
	}
	return groups
}

// ByID looks up a single ingredient.
func (c *Catalog) ByID(id string) (taco.Ingredient, bool) {
	ing, ok := c.byID[id]
	return ing, ok
}

// Resolve maps submitted ids to ingredients, keeping submission order.
// Unknown ids are dropped.
func (c *Catalog) Resolve(ids []string) []taco.Ingredient {
	var result []taco.Ingredient
	for _, id := range ids {
		if ing, ok := c.byID[id]; ok {
			result = append(result, ing)
		}
	}
	return result
}
