package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
)

func testCatalog() *Catalog {
	menu := []models.MenuItem{
		{ID: 1, Name: "Classic Milk Tea", Cost: 5.00},
		{ID: 2, Name: "Taro Smoothie", Cost: 6.25},
	}
	ingredients := []models.Ingredient{
		{ID: 7, Name: "Pearls", Cost: 0.50, IngredientGroup: "Boba"},
		{ID: 8, Name: "Lychee Jelly", Cost: 0.75, IngredientGroup: "Jelly"},
		{ID: 9, Name: "Green Tea", Cost: 0.00, IngredientGroup: "Tea"},
		{ID: 10, Name: "Ice", Cost: 0.00, IngredientGroup: "Scale"},
		{ID: 11, Name: "Sugar", Cost: 0.00, IngredientGroup: "Scale"},
		{ID: 22, Name: "Large Cup", Cost: 1.25, IngredientGroup: "Default"},
		{ID: 23, Name: "Small Cup", Cost: 0.75, IngredientGroup: "Default"},
		{ID: 24, Name: "Medium Cup", Cost: 1.00, IngredientGroup: "Default"},
	}
	return NewCatalog(menu, ingredients)
}

func testEngine() *PricingEngine {
	pricingCfg := config.PricingConfig{
		TaxRate:            0.0825,
		LoyaltyThreshold:   50,
		LoyaltyRedeemCost:  50,
		LoyaltyMaxDiscount: 5.00,
	}
	catalogCfg := config.CatalogConfig{
		CupSmallID:          23,
		CupMediumID:         24,
		CupLargeID:          22,
		ScaleIngredientName: "Ice",
	}
	return NewPricingEngine(pricingCfg, catalogCfg)
}

func mustEqual(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, want %v", name, got.String(), want)
	}
}

func TestPriceCartSingleDrinkWithTopping(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 2,
		Customizations: map[CustomizationCategory]Customization{
			CategoryToppings: {Choices: []string{"Pearls"}},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())

	mustEqual(t, "subtotal", quote.Subtotal, 11.00)
	mustEqual(t, "tax", quote.Tax, 0.91)
	mustEqual(t, "total", quote.Total, 11.91)
	mustEqual(t, "discount", quote.Discount, 0)
}

func TestPriceCartLoyaltyDiscount(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 2,
		Customizations: map[CustomizationCategory]Customization{
			CategoryToppings: {Choices: []string{"Pearls"}},
		},
	}}

	quote := testEngine().PriceCartWithLoyalty(cart, testCatalog(), 60, true)

	mustEqual(t, "rawSubtotal", quote.RawSubtotal, 11.00)
	mustEqual(t, "discount", quote.Discount, 5.00)
	mustEqual(t, "subtotal", quote.Subtotal, 6.00)
	mustEqual(t, "tax", quote.Tax, 0.50)
	mustEqual(t, "total", quote.Total, 6.50)
}

func TestLoyaltyDiscountGate(t *testing.T) {
	catalog := testCatalog()
	engine := testEngine()
	cart := []CartLine{{MenuID: 1, Quantity: 1}}

	cases := []struct {
		name       string
		cart       []CartLine
		points     int
		useLoyalty bool
		want       float64
	}{
		{"opted out", cart, 100, false, 0},
		{"below threshold", cart, 49, true, 0},
		{"at threshold", cart, 50, true, 5.00},
		{"empty cart", nil, 100, true, 0},
	}
	for _, tc := range cases {
		quote := engine.PriceCartWithLoyalty(tc.cart, catalog, tc.points, tc.useLoyalty)
		if !quote.Discount.Equal(decimal.NewFromFloat(tc.want)) {
			t.Errorf("%s: discount = %s, want %v", tc.name, quote.Discount.String(), tc.want)
		}
	}
}

func TestLoyaltyDiscountCappedAtSubtotal(t *testing.T) {
	// A $0.50 cart must not yield a $5 discount.
	cart := []CartLine{{
		MenuID:   99, // unknown, priced as zero
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategoryToppings: {Choices: []string{"Pearls"}},
		},
	}}

	quote := testEngine().PriceCartWithLoyalty(cart, testCatalog(), 100, true)

	mustEqual(t, "discount", quote.Discount, 0.50)
	mustEqual(t, "subtotal", quote.Subtotal, 0)
	mustEqual(t, "total", quote.Total, 0)
}

func TestPriceAdditivity(t *testing.T) {
	catalog := testCatalog()
	engine := testEngine()
	carts := [][]CartLine{
		{{MenuID: 1, Quantity: 1}},
		{{MenuID: 2, Quantity: 3, Customizations: map[CustomizationCategory]Customization{
			CategoryJelly: {Choices: []string{"Lychee Jelly"}},
		}}},
		{
			{MenuID: 1, Quantity: 2},
			{MenuID: 2, Quantity: 1, Customizations: map[CustomizationCategory]Customization{
				CategoryToppings: {Choices: []string{"Pearls", "Lychee Jelly"}},
			}},
		},
	}

	for i, cart := range carts {
		for _, points := range []int{0, 60} {
			quote := engine.PriceCartWithLoyalty(cart, catalog, points, points > 0)
			wantTax := quote.Subtotal.Mul(decimal.NewFromFloat(0.0825)).Round(2)
			wantTotal := quote.Subtotal.Add(wantTax).Round(2)
			if !quote.Tax.Equal(wantTax) {
				t.Errorf("cart %d points %d: tax = %s, want %s", i, points, quote.Tax, wantTax)
			}
			if !quote.Total.Equal(wantTotal) {
				t.Errorf("cart %d points %d: total = %s, want %s", i, points, quote.Total, wantTotal)
			}
			if !quote.Subtotal.Equal(quote.RawSubtotal.Sub(quote.Discount)) {
				t.Errorf("cart %d points %d: subtotal %s != raw %s - discount %s",
					i, points, quote.Subtotal, quote.RawSubtotal, quote.Discount)
			}
		}
	}
}

func TestCupCostEntersLineTotal(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategorySize: {Choice: "small"},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "rawSubtotal", quote.RawSubtotal, 5.75)

	cart[0].Customizations[CategorySize] = Customization{Choice: "LARGE"}
	quote = testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "rawSubtotal", quote.RawSubtotal, 6.25)
}

func TestUnknownCupSizePricedAsZero(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategorySize: {Choice: "venti"},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "rawSubtotal", quote.RawSubtotal, 5.00)
}

func TestScalarSelectionsCarryNoCost(t *testing.T) {
	full := 100
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategoryIce:   {Percent: &full},
			CategorySugar: {Percent: &full},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "subtotal", quote.Subtotal, 5.00)
}

func TestNoneAndEmptySelectionsSkipped(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategoryTea:      {Choice: "none"},
			CategoryToppings: {Choices: []string{}},
			CategoryJelly:    {Choices: []string{"None"}},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "subtotal", quote.Subtotal, 5.00)
}

func TestUnknownIngredientPricedAsZero(t *testing.T) {
	cart := []CartLine{{
		MenuID:   1,
		Quantity: 1,
		Customizations: map[CustomizationCategory]Customization{
			CategoryToppings: {Choices: []string{"Dragonfruit Pop"}},
		},
	}}

	quote := testEngine().PriceCart(cart, testCatalog())
	mustEqual(t, "subtotal", quote.Subtotal, 5.00)
}
