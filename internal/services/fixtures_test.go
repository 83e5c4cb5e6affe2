package service_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/cache"
	"github.com/aaravmahajanofficial/swag-catalog/internal/cart"
	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/stretchr/testify/require"
)

const (
	shirtID     int64 = 1
	mugID       int64 = 2
	capID       int64 = 3
	penID       int64 = 4
	unknownID   int64 = 99
	testSession       = "session-test"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(catalog.Dataset{
		Products: []models.Product{
			{
				ID: shirtID, Name: "Remera algodón", SKU: "TXT-001", Category: "textil", Supplier: "promo-sur",
				BasePrice: 50, Stock: 100, Status: models.ProductStatusActive,
				Colors: []string{"red", "blue"}, Sizes: []string{"M", "L"},
				PriceBreaks: []models.PriceBreak{{MinQty: 10, Price: 45}, {MinQty: 50, Price: 40}},
			},
			{ID: mugID, Name: "Taza cerámica", SKU: "HOG-002", Category: "hogar", Supplier: "promo-sur", BasePrice: 30, Stock: 10, Status: models.ProductStatusPending},
			{ID: capID, Name: "Gorra", SKU: "ACC-003", Category: "accesorios", Supplier: "textil-norte", BasePrice: 20, Stock: 0, Status: models.ProductStatusActive},
			{ID: penID, Name: "Bolígrafo", SKU: "ESC-004", Category: "escritura", Supplier: "textil-norte", BasePrice: 2, Stock: 5, Status: models.ProductStatusActive},
		},
		Categories: []models.Category{
			{ID: models.CategoryAll, Name: "Todos"},
			{ID: "textil", Name: "Textil"},
			{ID: "hogar", Name: "Hogar"},
		},
		Suppliers:  []models.Supplier{{ID: "promo-sur", Name: "Promo Sur"}, {ID: "textil-norte", Name: "Textil Norte"}},
		PriceBands: []models.PriceBand{{Min: 0, Max: 100}},
		Colors:     []models.Color{{Name: "red", Value: "#f00"}},
	})
	require.NoError(t, err)

	return c
}

func testRegistry() *cart.Registry {
	return cart.NewRegistry(cart.NewCacheStorageFactory(cache.NewMemoryCache(time.Hour), time.Hour), time.Hour, 0)
}
