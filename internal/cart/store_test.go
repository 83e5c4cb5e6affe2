package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/cart"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Load(ctx context.Context) ([]models.CartItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *mockStorage) Save(ctx context.Context, items []models.CartItem) error {
	args := m.Called(ctx, items)

	return args.Error(0)
}

// memStorage records every snapshot it is asked to save.
type memStorage struct {
	mu    sync.Mutex
	seed  []models.CartItem
	saved [][]models.CartItem
	delay time.Duration
}

func (m *memStorage) Load(context.Context) ([]models.CartItem, error) {
	return m.seed, nil
}

func (m *memStorage) Save(_ context.Context, items []models.CartItem) error {
	time.Sleep(m.delay)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = append(m.saved, items)

	return nil
}

func (m *memStorage) last() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.saved) == 0 {
		return nil
	}

	return m.saved[len(m.saved)-1]
}

var shirt = models.Product{ID: 7, Name: "Camiseta", SKU: "TXT-7", BasePrice: 50, Stock: 100, Status: models.ProductStatusActive}

func newStore(t *testing.T, storage cart.Storage) *cart.Store {
	t.Helper()

	store, err := cart.NewStore(t.Context(), storage)
	require.NoError(t, err)

	return store
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges Same Identity", func(t *testing.T) {
		// Arrange
		storage := &memStorage{}
		store := newStore(t, storage)

		// Act
		require.NoError(t, store.AddToCart(ctx, shirt, 2, "red", "M", 50))
		require.NoError(t, store.AddToCart(ctx, shirt, 3, "red", "M", 45))

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, 45.0, items[0].UnitPrice)
		assert.Equal(t, 225.0, items[0].TotalPrice)
		assert.Equal(t, 5, store.QuantityOfItems())
		assert.Equal(t, items, storage.last())
	})

	t.Run("Different Options Are Separate Lines", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))
		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "L", 50))
		require.NoError(t, store.AddToCart(ctx, shirt, 1, "blue", "M", 50))

		items := store.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "L", items[1].SelectedSize)
		assert.Equal(t, "blue", items[2].SelectedColor)
		assert.Equal(t, 3, store.QuantityOfItems())
		assert.Equal(t, 150.0, store.Total())
	})

	t.Run("Line Keeps Product Snapshot", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		require.NoError(t, store.AddToCart(ctx, shirt, 4, "", "", 50))

		item := store.Items()[0]
		assert.Equal(t, shirt, item.Product)
		assert.Equal(t, 200.0, item.TotalPrice)
	})

	t.Run("Non Positive Quantity Is Ignored", func(t *testing.T) {
		// Arrange
		storage := new(mockStorage)
		storage.On("Load", mock.Anything).Return([]models.CartItem{}, nil).Once()
		store := newStore(t, storage)

		// Act
		errZero := store.AddToCart(ctx, shirt, 0, "red", "M", 50)
		errNegative := store.AddToCart(ctx, shirt, -3, "red", "M", 50)

		// Assert
		assert.NoError(t, errZero)
		assert.NoError(t, errNegative)
		assert.Empty(t, store.Items())
		storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		storage.AssertExpectations(t)
	})

	t.Run("Failed Save Leaves Cart Unchanged", func(t *testing.T) {
		// Arrange
		saveErr := errors.New("quota exceeded")
		storage := new(mockStorage)
		storage.On("Load", mock.Anything).Return([]models.CartItem{}, nil).Once()
		storage.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		storage.On("Save", mock.Anything, mock.Anything).Return(saveErr).Once()
		store := newStore(t, storage)

		notified := 0
		store.Subscribe(func([]models.CartItem) { notified++ })

		require.NoError(t, store.AddToCart(ctx, shirt, 2, "red", "M", 50))

		// Act
		err := store.AddToCart(ctx, shirt, 3, "red", "M", 45)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, saveErr)
		assert.Equal(t, 2, store.QuantityOfItems())
		assert.Equal(t, 100.0, store.Items()[0].TotalPrice)
		assert.Equal(t, 1, notified)
		storage.AssertExpectations(t)
	})
}

func TestQuantityOfItems(t *testing.T) {
	t.Run("Empty Cart", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		assert.Equal(t, 0, store.QuantityOfItems())
		assert.Equal(t, 0.0, store.Total())
		assert.Equal(t, 0, store.Len())
		assert.NotNil(t, store.Items())
	})

	t.Run("Seeded From Storage", func(t *testing.T) {
		seed := []models.CartItem{
			{Product: shirt, Quantity: 2, UnitPrice: 50, TotalPrice: 100},
			{Product: models.Product{ID: 8}, Quantity: 10, UnitPrice: 9.5, TotalPrice: 95},
		}

		store := newStore(t, &memStorage{seed: seed})

		assert.Equal(t, 12, store.QuantityOfItems())
		assert.Equal(t, 195.0, store.Total())
	})
}

func TestNewStore(t *testing.T) {
	t.Run("Failure - Storage Error", func(t *testing.T) {
		loadErr := errors.New("connection reset")
		storage := new(mockStorage)
		storage.On("Load", mock.Anything).Return(nil, loadErr).Once()

		store, err := cart.NewStore(t.Context(), storage)

		require.Error(t, err)
		assert.Nil(t, store)
		assert.ErrorIs(t, err, loadErr)
	})
}

func TestClear(t *testing.T) {
	storage := &memStorage{}
	store := newStore(t, storage)
	require.NoError(t, store.AddToCart(t.Context(), shirt, 2, "red", "M", 50))

	require.NoError(t, store.Clear(t.Context()))

	assert.Empty(t, store.Items())
	assert.Equal(t, []models.CartItem{}, storage.last())
}

func TestSubscribe(t *testing.T) {
	ctx := t.Context()

	t.Run("Observers Receive Snapshot", func(t *testing.T) {
		// Arrange
		store := newStore(t, &memStorage{})

		var first, second [][]models.CartItem
		store.Subscribe(func(items []models.CartItem) { first = append(first, items) })
		store.Subscribe(func(items []models.CartItem) { second = append(second, items) })

		// Act
		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))
		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))

		// Assert
		require.Len(t, first, 2)
		require.Len(t, second, 2)
		assert.Equal(t, 2, first[1][0].Quantity)
		assert.Equal(t, first, second)
	})

	t.Run("Unsubscribe Stops Notifications", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		calls := 0
		unsubscribe := store.Subscribe(func([]models.CartItem) { calls++ })

		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))
		unsubscribe()
		unsubscribe()
		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))

		assert.Equal(t, 1, calls)
	})

	t.Run("Observer Snapshot Is Isolated", func(t *testing.T) {
		store := newStore(t, &memStorage{})
		store.Subscribe(func(items []models.CartItem) { items[0].Quantity = 999 })

		require.NoError(t, store.AddToCart(ctx, shirt, 1, "red", "M", 50))

		assert.Equal(t, 1, store.QuantityOfItems())
	})

	t.Run("Observer May Read The Store", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		var seen int
		store.Subscribe(func([]models.CartItem) { seen = store.QuantityOfItems() })

		require.NoError(t, store.AddToCart(ctx, shirt, 3, "red", "M", 50))

		assert.Equal(t, 3, seen)
	})
}

func TestConcurrentAdds(t *testing.T) {
	store := newStore(t, &memStorage{})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddToCart(context.Background(), shirt, 1, "red", "M", 50)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.QuantityOfItems())
	assert.Len(t, store.Items(), 1)
}

func TestAddWithinStock(t *testing.T) {
	ctx := t.Context()
	pen := models.Product{ID: 4, Name: "Bolígrafo", BasePrice: 2, Stock: 5, Status: models.ProductStatusActive}

	t.Run("Counts Every Option Of The Product", func(t *testing.T) {
		// Arrange
		storage := &memStorage{}
		store := newStore(t, storage)
		require.NoError(t, store.AddWithinStock(ctx, pen, 3, "red", "", 2))

		// Act
		err := store.AddWithinStock(ctx, pen, 3, "blue", "", 2)

		// Assert
		stockErr, ok := cart.IsStockError(err)
		require.True(t, ok, "expected a StockError, got %v", err)
		assert.Equal(t, &cart.StockError{ProductID: 4, Requested: 3, InCart: 3, Stock: 5}, stockErr)
		assert.Equal(t, 3, store.QuantityOfItems())
		assert.Len(t, storage.saved, 1)
	})

	t.Run("Exactly At Stock", func(t *testing.T) {
		store := newStore(t, &memStorage{})

		require.NoError(t, store.AddWithinStock(ctx, pen, 5, "", "", 2))

		assert.Equal(t, 5, store.QuantityOfItems())
	})

	t.Run("Concurrent Additions Never Exceed Stock", func(t *testing.T) {
		// Arrange
		store := newStore(t, &memStorage{delay: 5 * time.Millisecond})

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
			rejected int
		)

		// Act
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.AddWithinStock(context.Background(), pen, 1, "", "", 2)

				mu.Lock()
				defer mu.Unlock()
				if _, ok := cart.IsStockError(err); ok {
					rejected++
				} else if err == nil {
					accepted++
				}
			}()
		}
		wg.Wait()

		// Assert
		assert.Equal(t, 5, store.QuantityOfItems())
		assert.Equal(t, 5, accepted)
		assert.Equal(t, 15, rejected)
	})
}
