package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	t.Run("Clean Dataset", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].PriceBreaks = []models.PriceBreak{{MinQty: 10, Price: 4000}, {MinQty: 50, Price: 3500}}

		assert.Empty(t, catalog.Check(ds))
	})

	t.Run("Non Monotonic Breaks", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].PriceBreaks = []models.PriceBreak{{MinQty: 50, Price: 4200}, {MinQty: 10, Price: 3500}}

		warnings := catalog.Check(ds)

		assert.Equal(t, []string{"product 1: break at 50 is more expensive than a lower threshold"}, warnings)
	})

	t.Run("Break Above Base Price", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].PriceBreaks = []models.PriceBreak{{MinQty: 10, Price: 5000}}

		assert.Equal(t, []string{"product 1: break at 10 priced above base price"}, catalog.Check(ds))
	})

	t.Run("Zero Threshold", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].PriceBreaks = []models.PriceBreak{{MinQty: 0, Price: 4000}}

		assert.Equal(t, []string{"product 1: price break with threshold 0 is never applied"}, catalog.Check(ds))
	})

	t.Run("Unknown References", func(t *testing.T) {
		ds := fixtureDataset()
		ds.Products[0].Supplier = "oeste"
		ds.Products[0].Colors = []string{"Rojo", "Fucsia"}

		warnings := catalog.Check(ds)

		assert.Contains(t, warnings, `product 1: unknown supplier "oeste"`)
		assert.Contains(t, warnings, `product 1: colour "Fucsia" has no display value`)
		assert.NotContains(t, warnings, `product 2: unknown category "textil"`)
	})
}
