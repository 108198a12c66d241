package services

import (
	"errors"
	"strings"
	"testing"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/repositories"
)

func testComposer() *Composer {
	return NewComposer(config.CatalogConfig{
		CupSmallID:          23,
		CupMediumID:         24,
		CupLargeID:          22,
		ScaleIngredientName: "Ice",
	})
}

func findScalar(drink *ComposedDrink, ingredientID int64) (int, bool) {
	for _, s := range drink.Scalar {
		if s.IngredientID == ingredientID {
			return s.Servings, true
		}
	}
	return 0, false
}

func hasDiscrete(drink *ComposedDrink, ingredientID int64) bool {
	for _, id := range drink.Discrete {
		if id == ingredientID {
			return true
		}
	}
	return false
}

func TestComposeDiscreteSelections(t *testing.T) {
	line := CartLine{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategorySize:     {Choice: "large"},
			CategoryTea:      {Choice: "Green Tea"},
			CategoryToppings: {Choices: []string{"Pearls", "Lychee Jelly"}},
		},
	}

	drink, err := testComposer().Compose(line, testCatalog())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for _, id := range []int64{22, 9, 7, 8} {
		if !hasDiscrete(drink, id) {
			t.Errorf("missing discrete ingredient %d in %v", id, drink.Discrete)
		}
	}
	if len(drink.Discrete) != 4 {
		t.Errorf("discrete count = %d, want 4", len(drink.Discrete))
	}
	if len(drink.Scalar) != 0 {
		t.Errorf("unexpected scalar servings %v", drink.Scalar)
	}
}

func TestComposePercentMapping(t *testing.T) {
	composer := testComposer()
	catalog := testCatalog()

	cases := []struct {
		percent  int
		servings int
		emitted  bool
	}{
		{0, 0, false},
		{25, 1, true},
		{50, 2, true},
		{75, 3, true},
		{100, 4, true},
	}
	for _, tc := range cases {
		p := tc.percent
		line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
			CategoryIce: {Percent: &p},
		}}
		drink, err := composer.Compose(line, catalog)
		if err != nil {
			t.Fatalf("percent %d: %v", tc.percent, err)
		}
		servings, ok := findScalar(drink, 10)
		if ok != tc.emitted {
			t.Errorf("percent %d: emitted = %v, want %v", tc.percent, ok, tc.emitted)
			continue
		}
		if ok && servings != tc.servings {
			t.Errorf("percent %d: servings = %d, want %d", tc.percent, servings, tc.servings)
		}
	}
}

func TestComposeInvalidPercent(t *testing.T) {
	p := 33
	line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
		CategorySugar: {Percent: &p},
	}}
	if _, err := testComposer().Compose(line, testCatalog()); err == nil {
		t.Fatal("expected error for percent 33")
	}
}

func TestComposeCupSizes(t *testing.T) {
	composer := testComposer()
	catalog := testCatalog()

	cases := map[string]int64{"small": 23, "Medium": 24, "LARGE": 22}
	for choice, want := range cases {
		line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
			CategorySize: {Choice: choice},
		}}
		drink, err := composer.Compose(line, catalog)
		if err != nil {
			t.Fatalf("size %q: %v", choice, err)
		}
		if !hasDiscrete(drink, want) {
			t.Errorf("size %q: discrete = %v, want cup %d", choice, drink.Discrete, want)
		}
	}
}

func TestComposeSkipsNoneSelections(t *testing.T) {
	line := CartLine{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategorySize: {Choice: "none"},
			CategoryTea:  {Choice: ""},
			CategoryBoba: {Choices: []string{"none", ""}},
		},
	}

	drink, err := testComposer().Compose(line, testCatalog())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(drink.Discrete) != 0 || len(drink.Scalar) != 0 {
		t.Errorf("expected empty composition, got discrete %v scalar %v", drink.Discrete, drink.Scalar)
	}
}

func TestComposeUnknownIngredient(t *testing.T) {
	line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
		CategoryToppings: {Choices: []string{"Moon Dust"}},
	}}
	_, err := testComposer().Compose(line, testCatalog())
	if err == nil {
		t.Fatal("expected error for unknown ingredient")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestComposeMissingScaleIngredient(t *testing.T) {
	// The catalog has no "Ice" row, so a non-zero ice selection cannot be
	// resolved and must fail rather than vanish from the ledger.
	catalog := NewCatalog(nil, nil)
	half := 50
	line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
		CategoryIce: {Percent: &half},
	}}

	_, err := testComposer().Compose(line, catalog)
	if err == nil {
		t.Fatal("expected error for missing scale ingredient")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestComposeUnknownCategory(t *testing.T) {
	line := CartLine{MenuID: 1, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
		"glitter": {Choice: "extra"},
	}}
	if _, err := testComposer().Compose(line, testCatalog()); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestComposeAllReportsLineIndex(t *testing.T) {
	cart := []CartLine{
		{MenuID: 1, Quantity: 1},
		{MenuID: 2, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
			CategoryTea: {Choice: "Moon Dust"},
		}},
	}

	_, err := testComposer().ComposeAll(cart, testCatalog())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cart line 1") {
		t.Errorf("error %q does not name the failing line", err)
	}
}
