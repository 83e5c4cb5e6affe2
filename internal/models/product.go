package models

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusInactive ProductStatus = "inactive"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusPending, ProductStatusInactive:
		return true
	}

	return false
}

// PriceBreak activates Price once the requested quantity reaches MinQty.
type PriceBreak struct {
	MinQty int     `json:"min_qty" yaml:"min_qty"`
	Price  float64 `json:"price"   yaml:"price"`
}

type Product struct {
	ID          int64         `json:"id"                     yaml:"id"`
	Name        string        `json:"name"                   yaml:"name"`
	SKU         string        `json:"sku"                    yaml:"sku"`
	Category    string        `json:"category"               yaml:"category"`
	Supplier    string        `json:"supplier"               yaml:"supplier"`
	BasePrice   float64       `json:"base_price"             yaml:"base_price"`
	Stock       int64         `json:"stock"                  yaml:"stock"`
	Status      ProductStatus `json:"status"                 yaml:"status"`
	Description string        `json:"description,omitempty"  yaml:"description"`
	Images      []string      `json:"images,omitempty"       yaml:"images"`
	Colors      []string      `json:"colors,omitempty"       yaml:"colors"`
	Sizes       []string      `json:"sizes,omitempty"        yaml:"sizes"`
	Features    []string      `json:"features,omitempty"     yaml:"features"`
	PriceBreaks []PriceBreak  `json:"price_breaks,omitempty" yaml:"price_breaks"`
}

// Purchasable mirrors the storefront rule: only active products with stock can be added.
func (p *Product) Purchasable() bool {
	return p.Status == ProductStatusActive && p.Stock > 0
}

type Category struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Icon  string `json:"icon"  yaml:"icon"`
	Count int    `json:"count" yaml:"count"`
}

type Supplier struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Products int    `json:"products" yaml:"products"`
}

type PriceBand struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Color maps a display name to a CSS renderable value.
type Color struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type CatalogFilters struct {
	Categories []Category  `json:"categories"`
	Suppliers  []Supplier  `json:"suppliers"`
	PriceBands []PriceBand `json:"price_bands"`
	Colors     []Color     `json:"colors"`
}

type PriceQuote struct {
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	BasePrice    float64 `json:"base_price"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
	Savings      float64 `json:"savings"`
	AppliedBreak int     `json:"applied_break"`
}
