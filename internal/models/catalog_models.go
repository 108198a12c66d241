package models

// Category groups menu items for display (e.g. Milk Tea, Fruit Tea).
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// MenuItem is a sellable drink base. Ingredients is populated only when
// materializing a kitchen order view (the consumed customizations for a
// specific drink instance), never as a static recipe.
type MenuItem struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	CategoryID  *int64            `json:"category_id"`
	Stock       int               `json:"stock"`
	Cost        float64           `json:"cost"`
	ImageURL    *string           `json:"image_url"`
	Ingredients []DrinkIngredient `json:"ingredients,omitempty"`
}

// Ingredient groups classify an ingredient's role in customization:
// "Tea", "Boba", "Jelly", "Toppings", "Scale" (ice/sugar), cup sizes,
// and "Default" for non-sellable packaging.
type Ingredient struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Stock           int     `json:"stock"`
	Cost            float64 `json:"cost"`
	IngredientType  int     `json:"ingredient_type"`
	IngredientGroup string  `json:"ingredient_group"`
}

// DrinkIngredient is one consumed customization on a drink instance.
// Servings encodes scalar amount (ice/sugar 0-4) or 1 for discrete picks.
type DrinkIngredient struct {
	ID           int64  `json:"id"`
	IngredientID int64  `json:"ingredient_id,omitempty"`
	Name         string `json:"name"`
	Servings     int    `json:"servings"`
}
