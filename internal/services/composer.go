package services

import (
	"fmt"
	"strings"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

// CustomizationCategory identifies one selectable group on a drink.
type CustomizationCategory string

const (
	CategorySize     CustomizationCategory = "size"
	CategoryIce      CustomizationCategory = "ice"
	CategorySugar    CustomizationCategory = "sugar"
	CategoryTea      CustomizationCategory = "tea"
	CategoryBoba     CustomizationCategory = "boba"
	CategoryJelly    CustomizationCategory = "jelly"
	CategoryToppings CustomizationCategory = "toppings"
)

// categoryKind tells the composer how to interpret a selection.
type categoryKind int

const (
	kindSingle categoryKind = iota // one ingredient name (or "none")
	kindMulti                      // a set of ingredient names
	kindScalar                     // a percentage of a fixed scale ingredient
)

var categoryKinds = map[CustomizationCategory]categoryKind{
	CategorySize:     kindSingle,
	CategoryIce:      kindScalar,
	CategorySugar:    kindScalar,
	CategoryTea:      kindSingle,
	CategoryBoba:     kindMulti,
	CategoryJelly:    kindMulti,
	CategoryToppings: kindMulti,
}

// Customization is a tagged selection. Which field carries the value depends
// on the category: Choice for single-select, Choices for multi-select,
// Percent for scalar (0, 25, 50, 75 or 100).
type Customization struct {
	Choice  string   `json:"choice,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Percent *int     `json:"percent,omitempty"`
}

// CartLine is one drink selection in a customer's cart. Quantity is the
// number of identical drinks; customization applies per unit.
type CartLine struct {
	MenuID         int64                                   `json:"menu_id"`
	Quantity       int                                     `json:"quantity" binding:"required,min=1"`
	Customizations map[CustomizationCategory]Customization `json:"customizations"`
}

// ScalarServing is a measured amount of a scale ingredient (ice, sugar).
type ScalarServing struct {
	IngredientID int64
	Servings     int
}

// ComposedDrink is the normalized form of one drink unit: the base menu id,
// the discrete ingredient picks (one serving each) and the scalar amounts.
type ComposedDrink struct {
	MenuID   int64
	Discrete []int64
	Scalar   []ScalarServing
}

// percentServings maps the selectable percentage steps to stored servings.
var percentServings = map[int]int{0: 0, 25: 1, 50: 2, 75: 3, 100: 4}

// Catalog is a point-in-time snapshot of menu items and ingredients, built
// per request. Requests never share mutable catalog state.
type Catalog struct {
	menuByID map[int64]models.MenuItem
	byID     map[int64]models.Ingredient
	byName   map[string]models.Ingredient
}

// NewCatalog indexes the given menu items and ingredients. Name lookups are
// case-insensitive because cart payloads carry display names.
func NewCatalog(menu []models.MenuItem, ingredients []models.Ingredient) *Catalog {
	c := &Catalog{
		menuByID: make(map[int64]models.MenuItem, len(menu)),
		byID:     make(map[int64]models.Ingredient, len(ingredients)),
		byName:   make(map[string]models.Ingredient, len(ingredients)),
	}
	for _, m := range menu {
		c.menuByID[m.ID] = m
	}
	for _, ing := range ingredients {
		c.byID[ing.ID] = ing
		c.byName[strings.ToLower(ing.Name)] = ing
	}
	return c
}

func (c *Catalog) MenuItem(id int64) (models.MenuItem, bool) {
	m, ok := c.menuByID[id]
	return m, ok
}

func (c *Catalog) IngredientByID(id int64) (models.Ingredient, bool) {
	ing, ok := c.byID[id]
	return ing, ok
}

func (c *Catalog) IngredientByName(name string) (models.Ingredient, bool) {
	ing, ok := c.byName[strings.ToLower(name)]
	return ing, ok
}

// Composer turns cart lines into normalized drink compositions. Cup-size
// ingredient ids and the scale ingredient name come from configuration, never
// from inline constants.
type Composer struct {
	cupIDs     map[string]int64
	scaleNames map[CustomizationCategory]string
}

// NewComposer builds a composer from the catalog configuration.
func NewComposer(cfg config.CatalogConfig) *Composer {
	return &Composer{
		cupIDs: map[string]int64{
			"small":  cfg.CupSmallID,
			"medium": cfg.CupMediumID,
			"large":  cfg.CupLargeID,
		},
		scaleNames: map[CustomizationCategory]string{
			CategoryIce:   cfg.ScaleIngredientName,
			CategorySugar: "Sugar",
		},
	}
}

// Compose normalizes one cart line into a per-unit drink composition.
// Discrete picks (tea, boba, jelly, toppings, the cup for the chosen size)
// carry one serving each. Scalar picks (ice, sugar) map their percentage to
// servings; a zero amount emits no row. Any selection that names a missing
// catalog entry is an error, never a silent no-op.
func (cp *Composer) Compose(line CartLine, catalog *Catalog) (*ComposedDrink, error) {
	drink := &ComposedDrink{MenuID: line.MenuID}

	for category, sel := range line.Customizations {
		kind, ok := categoryKinds[category]
		if !ok {
			return nil, fmt.Errorf("%w: unknown customization category %q", repositories.ErrValidation, category)
		}

		switch kind {
		case kindSingle:
			if skipChoice(sel.Choice) {
				continue
			}
			id, err := cp.resolveSingle(category, sel.Choice, catalog)
			if err != nil {
				return nil, err
			}
			drink.Discrete = append(drink.Discrete, id)

		case kindMulti:
			for _, name := range sel.Choices {
				if skipChoice(name) {
					continue
				}
				ing, ok := catalog.IngredientByName(name)
				if !ok {
					return nil, fmt.Errorf("%w: ingredient %q in category %q", repositories.ErrNotFound, name, category)
				}
				drink.Discrete = append(drink.Discrete, ing.ID)
			}

		case kindScalar:
			if sel.Percent == nil {
				continue
			}
			servings, ok := percentServings[*sel.Percent]
			if !ok {
				return nil, fmt.Errorf("%w: invalid %s percentage %d", repositories.ErrValidation, category, *sel.Percent)
			}
			if servings == 0 {
				continue
			}
			ing, ok := catalog.IngredientByName(cp.scaleNames[category])
			if !ok {
				return nil, fmt.Errorf("%w: scale ingredient %q", repositories.ErrNotFound, cp.scaleNames[category])
			}
			drink.Scalar = append(drink.Scalar, ScalarServing{IngredientID: ing.ID, Servings: servings})
		}
	}

	return drink, nil
}

// ComposeAll normalizes every cart line, preserving order.
func (cp *Composer) ComposeAll(cart []CartLine, catalog *Catalog) ([]ComposedDrink, error) {
	drinks := make([]ComposedDrink, 0, len(cart))
	for i, line := range cart {
		drink, err := cp.Compose(line, catalog)
		if err != nil {
			return nil, fmt.Errorf("cart line %d: %w", i, err)
		}
		drinks = append(drinks, *drink)
	}
	return drinks, nil
}

func (cp *Composer) resolveSingle(category CustomizationCategory, choice string, catalog *Catalog) (int64, error) {
	if category == CategorySize {
		id, ok := cp.cupIDs[strings.ToLower(choice)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown size %q", repositories.ErrValidation, choice)
		}
		return id, nil
	}
	ing, ok := catalog.IngredientByName(choice)
	if !ok {
		return 0, fmt.Errorf("%w: ingredient %q in category %q", repositories.ErrNotFound, choice, category)
	}
	return ing.ID, nil
}

func skipChoice(choice string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(choice))
	return trimmed == "" || trimmed == "none"
}
