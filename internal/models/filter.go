package models

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
)

// CategoryAll disables the category predicate.
const CategoryAll = "all"

// FilterCriteria is recomputed on every listing request. Nil bounds and an
// empty supplier impose no constraint.
type FilterCriteria struct {
	Category string   `json:"category"`
	Search   string   `json:"search"`
	SortBy   SortKey  `json:"sort_by"`
	Supplier string   `json:"supplier,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

type ProductList struct {
	Products []Product      `json:"products"`
	Total    int            `json:"total"`
	Criteria FilterCriteria `json:"criteria"`
}
