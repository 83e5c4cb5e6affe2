package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
)

// Check reports data problems that do not stop the catalog from loading:
// price breaks that are not monotonic, breaks priced above the base price,
// products referencing unknown categories or suppliers, and unknown colours.
// Price resolution is unaffected by these findings.
func Check(ds Dataset) []string {
	var warnings []string

	categories := make(map[string]bool, len(ds.Categories))
	for _, c := range ds.Categories {
		categories[c.ID] = true
	}

	suppliers := make(map[string]bool, len(ds.Suppliers))
	for _, s := range ds.Suppliers {
		suppliers[s.ID] = true
	}

	colors := make(map[string]bool, len(ds.Colors))
	for _, c := range ds.Colors {
		colors[c.Name] = true
	}

	for _, p := range ds.Products {
		if len(categories) > 0 && !categories[p.Category] {
			warnings = append(warnings, fmt.Sprintf("product %d: unknown category %q", p.ID, p.Category))
		}
		if len(suppliers) > 0 && !suppliers[p.Supplier] {
			warnings = append(warnings, fmt.Sprintf("product %d: unknown supplier %q", p.ID, p.Supplier))
		}
		for _, color := range p.Colors {
			if len(colors) > 0 && !colors[color] {
				warnings = append(warnings, fmt.Sprintf("product %d: colour %q has no display value", p.ID, color))
			}
		}

		warnings = append(warnings, checkPriceBreaks(p)...)
	}

	return warnings
}

func checkPriceBreaks(p models.Product) []string {
	if len(p.PriceBreaks) == 0 {
		return nil
	}

	var warnings []string

	breaks := slices.Clone(p.PriceBreaks)
	slices.SortStableFunc(breaks, func(a, b models.PriceBreak) int {
		return cmp.Compare(a.MinQty, b.MinQty)
	})

	prev := p.BasePrice
	for _, b := range breaks {
		if b.MinQty <= 0 {
			warnings = append(warnings, fmt.Sprintf("product %d: price break with threshold %d is never applied", p.ID, b.MinQty))
			continue
		}
		if b.Price > p.BasePrice {
			warnings = append(warnings, fmt.Sprintf("product %d: break at %d priced above base price", p.ID, b.MinQty))
		} else if b.Price > prev {
			warnings = append(warnings, fmt.Sprintf("product %d: break at %d is more expensive than a lower threshold", p.ID, b.MinQty))
		}
		prev = b.Price
	}

	return warnings
}
