// Package cart holds the per-session cart state. A Store is an explicit
// handle; callers that need to react to changes register an Observer.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/pricing"
	"github.com/samber/lo"
)

// Observer receives the full line item snapshot after every mutation.
type Observer func(items []models.CartItem)

// Storage persists the full snapshot of one cart. Load returns an empty
// slice when nothing was stored or the stored value is unreadable.
type Storage interface {
	Load(ctx context.Context) ([]models.CartItem, error)
	Save(ctx context.Context, items []models.CartItem) error
}

type subscription struct {
	id int
	fn Observer
}

// ErrRetired is returned by mutations on a store that is no longer the
// session's current one. The caller should fetch the session's store again.
var ErrRetired = errors.New("cart store retired")

type Store struct {
	// mu is shared by every store the registry opens for one session, so a
	// reload cannot read storage while an older store is still saving.
	mu        *sync.Mutex
	items     []models.CartItem
	storage   Storage
	observers []subscription
	nextID    int
	retired   bool
	onRetire  func()
}

// NewStore seeds a store from whatever storage holds.
func NewStore(ctx context.Context, storage Storage) (*Store, error) {
	return load(ctx, storage, new(sync.Mutex))
}

// load expects mu to be held by the caller when it is shared.
func load(ctx context.Context, storage Storage, mu *sync.Mutex) (*Store, error) {
	items, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	return &Store{mu: mu, items: items, storage: storage}, nil
}

// retire stops the store from accepting mutations. It waits for a mutation
// in flight to finish.
func (s *Store) retire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.retireLocked()
}

func (s *Store) retireLocked() {
	if s.retired {
		return
	}

	s.retired = true
	if s.onRetire != nil {
		s.onRetire()
	}
}

// StockError reports an addition that would put more units of a product in
// the cart than are in stock.
type StockError struct {
	ProductID int64
	Requested int
	InCart    int
	Stock     int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %d: requested %d with %d already in cart, %d in stock", e.ProductID, e.Requested, e.InCart, e.Stock)
}

func IsStockError(err error) (*StockError, bool) {
	var stockErr *StockError
	if errors.As(err, &stockErr) {
		return stockErr, true
	}

	return nil, false
}

// AddToCart merges quantity units of product with the given options into the
// cart. A line with the same (product, color, size) has its quantity
// increased and is repriced at unitPrice; otherwise a new line is appended.
// Quantities <= 0 are ignored. The new snapshot is saved before it replaces
// the in-memory state, so a failed save leaves the cart untouched.
func (s *Store) AddToCart(ctx context.Context, product models.Product, quantity int, color, size string, unitPrice float64) error {
	return s.add(ctx, product, quantity, color, size, unitPrice, false)
}

// AddWithinStock is AddToCart with a stock guard: the units of product
// already in the cart, across all options, plus quantity must not exceed
// product.Stock. The check and the merge run under the same lock, so
// concurrent additions cannot overshoot. A rejected addition returns a
// *StockError and saves nothing.
func (s *Store) AddWithinStock(ctx context.Context, product models.Product, quantity int, color, size string, unitPrice float64) error {
	return s.add(ctx, product, quantity, color, size, unitPrice, true)
}

func (s *Store) add(ctx context.Context, product models.Product, quantity int, color, size string, unitPrice float64, limitToStock bool) error {
	if quantity <= 0 {
		return nil
	}

	return s.mutate(ctx, func(items []models.CartItem) ([]models.CartItem, error) {
		if limitToStock {
			inCart := quantityOf(items, product.ID)
			if int64(inCart+quantity) > product.Stock {
				return nil, &StockError{ProductID: product.ID, Requested: quantity, InCart: inCart, Stock: product.Stock}
			}
		}

		idx := slices.IndexFunc(items, func(it models.CartItem) bool {
			return it.ID == product.ID && it.SelectedColor == color && it.SelectedSize == size
		})

		if idx >= 0 {
			item := items[idx]
			item.Quantity += quantity
			item.UnitPrice = unitPrice
			item.TotalPrice = pricing.LineTotal(unitPrice, item.Quantity)
			items[idx] = item

			return items, nil
		}

		return append(items, models.CartItem{
			Product:       product,
			Quantity:      quantity,
			SelectedColor: color,
			SelectedSize:  size,
			UnitPrice:     unitPrice,
			TotalPrice:    pricing.LineTotal(unitPrice, quantity),
		}), nil
	})
}

// Clear drops every line item.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]models.CartItem) ([]models.CartItem, error) {
		return []models.CartItem{}, nil
	})
}

func (s *Store) mutate(ctx context.Context, apply func([]models.CartItem) ([]models.CartItem, error)) error {
	s.mu.Lock()

	if s.retired {
		s.mu.Unlock()
		return ErrRetired
	}

	next, err := apply(slices.Clone(s.items))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if next == nil {
		next = []models.CartItem{}
	}

	if err := s.storage.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	s.items = next
	observers := slices.Clone(s.observers)

	s.mu.Unlock()

	for _, o := range observers {
		o.fn(slices.Clone(next))
	}

	return nil
}

func quantityOf(items []models.CartItem, productID int64) int {
	return lo.SumBy(items, func(it models.CartItem) int {
		if it.ID == productID {
			return it.Quantity
		}
		return 0
	})
}

// QuantityOfItems sums the quantity of every line.
func (s *Store) QuantityOfItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.SumBy(s.items, func(it models.CartItem) int { return it.Quantity })
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pricing.Sum(lo.Map(s.items, func(it models.CartItem, _ int) float64 { return it.TotalPrice })...)
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		return []models.CartItem{}
	}

	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Subscribe registers o and returns a function that removes it again.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subscribeLocked(o)
}

func (s *Store) subscribeLocked(o Observer) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: o})

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool { return sub.id == id })
		})
	}
}
