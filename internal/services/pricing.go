package services

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"teahouse_backend/internal/config"
)

// Quote is the priced result for a cart. RawSubtotal is before any discount,
// Subtotal after it; Tax and Total are rounded to cents.
type Quote struct {
	RawSubtotal decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// PricingEngine computes cart prices against a catalog snapshot. All money
// math runs on decimals; floats only appear at the response boundary.
type PricingEngine struct {
	taxRate          decimal.Decimal
	loyaltyThreshold int
	maxDiscount      decimal.Decimal
	cupIDs           map[string]int64
}

// NewPricingEngine builds an engine from the configured money rules and the
// cup-size catalog ids, so a chosen cup prices at its catalog cost.
func NewPricingEngine(pricingCfg config.PricingConfig, catalogCfg config.CatalogConfig) *PricingEngine {
	return &PricingEngine{
		taxRate:          decimal.NewFromFloat(pricingCfg.TaxRate),
		loyaltyThreshold: pricingCfg.LoyaltyThreshold,
		maxDiscount:      decimal.NewFromFloat(pricingCfg.LoyaltyMaxDiscount),
		cupIDs: map[string]int64{
			"small":  catalogCfg.CupSmallID,
			"medium": catalogCfg.CupMediumID,
			"large":  catalogCfg.CupLargeID,
		},
	}
}

// PriceCart prices a cart without loyalty.
func (p *PricingEngine) PriceCart(cart []CartLine, catalog *Catalog) Quote {
	return p.PriceCartWithLoyalty(cart, catalog, 0, false)
}

// PriceCartWithLoyalty prices a cart, applying the loyalty discount before
// tax when the caller opts in, the balance meets the threshold and the cart
// is non-empty. The discount is capped at the configured maximum and never
// exceeds the subtotal.
func (p *PricingEngine) PriceCartWithLoyalty(cart []CartLine, catalog *Catalog, loyaltyPoints int, useLoyalty bool) Quote {
	raw := decimal.Zero
	for _, line := range cart {
		raw = raw.Add(p.LineTotal(line, catalog))
	}

	discount := decimal.Zero
	if useLoyalty && loyaltyPoints >= p.loyaltyThreshold && len(cart) > 0 {
		discount = decimal.Min(p.maxDiscount, raw)
	}

	subtotal := raw.Sub(discount)
	tax := subtotal.Mul(p.taxRate).Round(2)
	total := subtotal.Add(tax).Round(2)

	return Quote{
		RawSubtotal: raw,
		Discount:    discount,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
	}
}

// LineTotal is the per-cart-line price times quantity: the base drink cost
// plus every selected customization ingredient's catalog cost, the chosen cup
// included. Ice and sugar carry no direct cost; their percentages denote
// servings consumed at persistence time, not priced items.
func (p *PricingEngine) LineTotal(line CartLine, catalog *Catalog) decimal.Decimal {
	unit := decimal.Zero

	if item, ok := catalog.MenuItem(line.MenuID); ok {
		unit = unit.Add(decimal.NewFromFloat(item.Cost))
	} else {
		log.Warn().Int64("menu_id", line.MenuID).Msg("Pricing unknown menu item as zero cost")
	}

	for category, sel := range line.Customizations {
		switch categoryKinds[category] {
		case kindSingle:
			if skipChoice(sel.Choice) {
				continue
			}
			if category == CategorySize {
				unit = unit.Add(p.cupCost(sel.Choice, catalog))
				continue
			}
			unit = unit.Add(p.ingredientCost(sel.Choice, catalog))
		case kindMulti:
			for _, name := range sel.Choices {
				if skipChoice(name) {
					continue
				}
				unit = unit.Add(p.ingredientCost(name, catalog))
			}
		case kindScalar:
			// no direct cost
		}
	}

	quantity := line.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

func (p *PricingEngine) cupCost(size string, catalog *Catalog) decimal.Decimal {
	id, ok := p.cupIDs[strings.ToLower(size)]
	if !ok {
		log.Warn().Str("size", size).Msg("Pricing unknown cup size as zero cost")
		return decimal.Zero
	}
	ing, ok := catalog.IngredientByID(id)
	if !ok {
		log.Warn().Int64("ingredient_id", id).Msg("Pricing missing cup ingredient as zero cost")
		return decimal.Zero
	}
	return decimal.NewFromFloat(ing.Cost)
}

func (p *PricingEngine) ingredientCost(name string, catalog *Catalog) decimal.Decimal {
	ing, ok := catalog.IngredientByName(name)
	if !ok {
		log.Warn().Str("ingredient", name).Msg("Pricing unknown ingredient as zero cost")
		return decimal.Zero
	}
	return decimal.NewFromFloat(ing.Cost)
}
