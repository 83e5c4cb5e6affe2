package catalog

import (
	"fmt"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/samber/lo"
)

// Dataset is the raw catalog as supplied by a data source.
type Dataset struct {
	Products   []models.Product   `yaml:"products"`
	Categories []models.Category  `yaml:"categories"`
	Suppliers  []models.Supplier  `yaml:"suppliers"`
	PriceBands []models.PriceBand `yaml:"price_bands"`
	Colors     []models.Color     `yaml:"colors"`
}

// Catalog is the read-only, in-memory product collection. It is built once
// at start-up and safe for concurrent readers. Slices handed out share
// backing arrays with the catalog and must not be modified.
type Catalog struct {
	products []models.Product
	byID     map[int64]int
	filters  models.CatalogFilters
	colors   map[string]string
}

func New(ds Dataset) (*Catalog, error) {
	byID := make(map[int64]int, len(ds.Products))

	for i, p := range ds.Products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %d: negative stock %d", p.ID, p.Stock)
		}
		if !p.Status.Valid() {
			return nil, fmt.Errorf("product %d: unknown status %q", p.ID, p.Status)
		}
		byID[p.ID] = i
	}

	products := append([]models.Product(nil), ds.Products...)

	return &Catalog{
		products: products,
		byID:     byID,
		filters: models.CatalogFilters{
			Categories: countCategories(ds.Categories, products),
			Suppliers:  countSuppliers(ds.Suppliers, products),
			PriceBands: append([]models.PriceBand(nil), ds.PriceBands...),
			Colors:     append([]models.Color(nil), ds.Colors...),
		},
		colors: lo.SliceToMap(ds.Colors, func(c models.Color) (string, string) {
			return c.Name, c.Value
		}),
	}, nil
}

// Products returns the full catalog in source order.
func (c *Catalog) Products() []models.Product {
	return c.products
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) FindByID(id int64) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}

	return c.products[i], true
}

func (c *Catalog) Filters() models.CatalogFilters {
	return c.filters
}

// ColorValue maps a display colour name to its CSS value, falling back to
// the name itself when unmapped.
func (c *Catalog) ColorValue(name string) string {
	if v, ok := c.colors[name]; ok {
		return v
	}

	return name
}

// Search runs the filter engine against the canonical product list.
func (c *Catalog) Search(criteria models.FilterCriteria) []models.Product {
	return Filter(c.products, criteria)
}

func countCategories(categories []models.Category, products []models.Product) []models.Category {
	perCategory := lo.CountValuesBy(products, func(p models.Product) string { return p.Category })

	return lo.Map(categories, func(cat models.Category, _ int) models.Category {
		if cat.ID == models.CategoryAll {
			cat.Count = len(products)
		} else {
			cat.Count = perCategory[cat.ID]
		}

		return cat
	})
}

func countSuppliers(suppliers []models.Supplier, products []models.Product) []models.Supplier {
	perSupplier := lo.CountValuesBy(products, func(p models.Product) string { return p.Supplier })

	return lo.Map(suppliers, func(s models.Supplier, _ int) models.Supplier {
		s.Products = perSupplier[s.ID]

		return s
	})
}
