package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset() catalog.Dataset {
	return catalog.Dataset{
		Products: fixtureProducts(),
		Categories: []models.Category{
			{ID: models.CategoryAll, Name: "Todos", Icon: "apps", Count: 99},
			{ID: "textil", Name: "Textil", Icon: "checkroom", Count: 7},
			{ID: "hogar", Name: "Hogar", Icon: "coffee"},
			{ID: "escritura", Name: "Escritura", Icon: "edit"},
			{ID: "bolsos", Name: "Bolsos", Icon: "shopping_bag"},
			{ID: "juguetes", Name: "Juguetes", Icon: "toys"},
		},
		Suppliers: []models.Supplier{
			{ID: "norte", Name: "Textil Norte", Products: 12},
			{ID: "sur", Name: "Promo Sur"},
		},
		PriceBands: []models.PriceBand{{Min: 0, Max: 5000}, {Min: 5000, Max: 30000}},
		Colors: []models.Color{
			{Name: "Rojo", Value: "red"},
			{Name: "Azul", Value: "blue"},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Act
		c, err := catalog.New(fixtureDataset())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, c.Len())
		assert.Equal(t, ids(fixtureProducts()), ids(c.Products()))
	})

	t.Run("Failure - Duplicate ID", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products = append(ds.Products, models.Product{ID: 1, Status: models.ProductStatusActive})

		c, err := catalog.New(ds)

		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "duplicate product id 1")
	})

	t.Run("Failure - Negative Stock", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].Stock = -1

		_, err := catalog.New(ds)

		assert.ErrorContains(t, err, "negative stock")
	})

	t.Run("Failure - Unknown Status", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].Status = "discontinued"

		_, err := catalog.New(ds)

		assert.ErrorContains(t, err, "unknown status")
	})
}

func TestCatalogLookups(t *testing.T) {
	c, err := catalog.New(fixtureDataset())
	require.NoError(t, err)

	t.Run("FindByID", func(t *testing.T) {
		p, ok := c.FindByID(3)

		assert.True(t, ok)
		assert.Equal(t, "Taza Cerámica", p.Name)
	})

	t.Run("FindByID Unknown", func(t *testing.T) {
		p, ok := c.FindByID(404)

		assert.False(t, ok)
		assert.Zero(t, p)
	})

	t.Run("Counts Are Recomputed", func(t *testing.T) {
		filters := c.Filters()

		counts := lo.Map(filters.Categories, func(c models.Category, _ int) int { return c.Count })

		assert.Equal(t, []int{5, 2, 1, 1, 1, 0}, counts)

		require.Len(t, filters.Suppliers, 2)
		assert.Equal(t, 2, filters.Suppliers[0].Products)
		assert.Equal(t, 3, filters.Suppliers[1].Products)

		assert.Len(t, filters.PriceBands, 2)
		assert.Len(t, filters.Colors, 2)
	})

	t.Run("ColorValue", func(t *testing.T) {
		assert.Equal(t, "red", c.ColorValue("Rojo"))
		assert.Equal(t, "Fucsia", c.ColorValue("Fucsia"))
	})

	t.Run("Search Always Starts From Full Catalog", func(t *testing.T) {
		narrowed := c.Search(models.FilterCriteria{Category: "hogar"})
		full := c.Search(models.FilterCriteria{Category: models.CategoryAll})

		assert.Equal(t, []int64{3}, ids(narrowed))
		assert.Len(t, full, 5)
	})
}
