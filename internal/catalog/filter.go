package catalog

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter returns a new slice holding the products that satisfy every active
// predicate in criteria, ordered by criteria.SortBy. The input is never
// modified, so repeated calls over the same catalog are independent.
func Filter(products []models.Product, criteria models.FilterCriteria) []models.Product {
	query := ""
	if criteria.Search != "" {
		query = Normalize(criteria.Search)
	}

	filtered := lo.Filter(products, func(p models.Product, _ int) bool {
		return matchesCategory(p, criteria.Category) &&
			matchesSearch(p, criteria.Search, query) &&
			matchesSupplier(p, criteria.Supplier) &&
			matchesPrice(p, criteria.MinPrice, criteria.MaxPrice)
	})

	sortProducts(filtered, criteria.SortBy)

	return filtered
}

// Normalize decomposes accented characters, drops the combining marks and
// lowercases the result, so "Camíseta" and "CAMISETA" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}

	return strings.ToLower(out)
}

func matchesCategory(p models.Product, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}

	return p.Category == category
}

func matchesSearch(p models.Product, raw, query string) bool {
	if raw == "" {
		return true
	}

	return strings.Contains(Normalize(p.Name), query) || strings.Contains(Normalize(p.SKU), query)
}

func matchesSupplier(p models.Product, supplier string) bool {
	return supplier == "" || p.Supplier == supplier
}

// bounds are inclusive
func matchesPrice(p models.Product, minPrice, maxPrice *float64) bool {
	if minPrice != nil && p.BasePrice < *minPrice {
		return false
	}
	if maxPrice != nil && p.BasePrice > *maxPrice {
		return false
	}

	return true
}

func sortProducts(products []models.Product, key models.SortKey) {
	switch key {
	case models.SortByName:
		// Collators keep internal buffers, one per call.
		col := collate.New(language.Spanish)
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	case models.SortByPrice:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(a.BasePrice, b.BasePrice)
		})
	case models.SortByStock:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Stock, a.Stock)
		})
	}
}
