// Package pricing resolves volume pricing for catalog products.
package pricing

import (
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/shopspring/decimal"
)

// UnitPrice returns the unit price that applies to quantity units of p.
//
// The break with the highest threshold not exceeding quantity wins. A winning
// threshold of zero is treated as "no break" and yields the base price, so a
// {MinQty: 0} entry never discounts anything.
func UnitPrice(p models.Product, quantity int) float64 {
	return resolve(p, quantity).Price
}

func resolve(p models.Product, quantity int) models.PriceBreak {
	applied := models.PriceBreak{MinQty: 0, Price: p.BasePrice}
	found := false

	for _, b := range p.PriceBreaks {
		if b.MinQty <= quantity && (!found || b.MinQty >= applied.MinQty) {
			applied = b
			found = true
		}
	}

	if applied.MinQty > 0 {
		return applied
	}

	return models.PriceBreak{MinQty: 0, Price: p.BasePrice}
}

// LineTotal multiplies in decimal. The result is not rounded so that
// total = unit × quantity holds for sub-cent unit prices; rounding to cents
// happens when an amount is displayed.
func LineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		InexactFloat64()
}

// Sum adds line totals without accumulating float error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}

	return total.InexactFloat64()
}

// Calculate builds the full quote shown next to the quantity selector.
func Calculate(p models.Product, quantity int) models.PriceQuote {
	applied := resolve(p, quantity)

	total := LineTotal(applied.Price, quantity)
	savings := decimal.NewFromFloat(p.BasePrice).
		Sub(decimal.NewFromFloat(applied.Price)).
		Mul(decimal.NewFromInt(int64(quantity)))
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return models.PriceQuote{
		ProductID:    p.ID,
		Quantity:     quantity,
		BasePrice:    p.BasePrice,
		UnitPrice:    applied.Price,
		TotalPrice:   total,
		Savings:      savings.InexactFloat64(),
		AppliedBreak: applied.MinQty,
	}
}
