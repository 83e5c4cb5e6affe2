package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/cart"
	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/pricing"
	"github.com/samber/lo"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	CountItems(ctx context.Context, sessionID string) (*models.CartCount, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (*models.Cart, error)
}

type cartService struct {
	carts   *cart.Registry
	catalog *catalog.Catalog
}

func NewCartService(carts *cart.Registry, c *catalog.Catalog) CartService {
	return &cartService{carts: carts, catalog: c}
}

// view loads the cart for reading; it does not retain empty carts.
func (s *cartService) view(ctx context.Context, sessionID string) (*cart.Store, error) {
	store, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return store, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	store, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return snapshot(sessionID, store), nil
}

func (s *cartService) CountItems(ctx context.Context, sessionID string) (*models.CartCount, error) {
	store, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &models.CartCount{Quantity: store.QuantityOfItems()}, nil
}

// AddItem prices the requested quantity against the catalog and merges it
// into the session cart. Non-positive quantities leave the cart unchanged.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error) {
	logger := middleware.LoggerFromContext(ctx)

	product, ok := s.catalog.FindByID(req.ProductID)
	if !ok {
		return nil, errors.NotFoundError("Product not found").WithDetail(fmt.Sprintf("no product with id %d", req.ProductID))
	}

	if req.Quantity <= 0 {
		logger.Debug("Ignoring non-positive quantity", slog.Int64("product_id", product.ID), slog.Int("quantity", req.Quantity))
		return s.GetCart(ctx, sessionID)
	}

	if !product.Purchasable() {
		return nil, errors.BadRequestError("Product is not available for purchase").
			WithDetail(fmt.Sprintf("product %d is %s with stock %d", product.ID, product.Status, product.Stock))
	}

	if req.Color != "" && len(product.Colors) > 0 && !slices.Contains(product.Colors, req.Color) {
		return nil, errors.AddValidationError("color", fmt.Sprintf("%q is not offered for this product", req.Color))
	}

	if req.Size != "" && len(product.Sizes) > 0 && !slices.Contains(product.Sizes, req.Size) {
		return nil, errors.AddValidationError("size", fmt.Sprintf("%q is not offered for this product", req.Size))
	}

	unitPrice := pricing.UnitPrice(product, req.Quantity)

	store, err := s.carts.Update(ctx, sessionID, func(store *cart.Store) error {
		return store.AddWithinStock(ctx, product, req.Quantity, req.Color, req.Size, unitPrice)
	})
	if err != nil {
		if stockErr, ok := cart.IsStockError(err); ok {
			return nil, errors.BadRequestError("Requested quantity exceeds available stock").
				WithDetail(fmt.Sprintf("requested %d with %d already in cart, %d in stock", stockErr.Requested, stockErr.InCart, stockErr.Stock))
		}

		logger.Error("Failed to update cart", slog.Int64("product_id", product.ID), slog.String("error", err.Error()))
		return nil, errors.StorageError("Failed to update cart").WithError(err)
	}

	logger.Info("Item added to cart",
		slog.Int64("product_id", product.ID),
		slog.Int("quantity", req.Quantity),
		slog.Float64("unit_price", unitPrice),
	)

	return snapshot(sessionID, store), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	store, err := s.carts.Update(ctx, sessionID, func(store *cart.Store) error {
		return store.Clear(ctx)
	})
	if err != nil {
		return nil, errors.StorageError("Failed to clear cart").WithError(err)
	}

	return snapshot(sessionID, store), nil
}

func snapshot(sessionID string, store *cart.Store) *models.Cart {
	items := store.Items()

	return &models.Cart{
		SessionID: sessionID,
		Items:     items,
		Quantity:  lo.SumBy(items, func(it models.CartItem) int { return it.Quantity }),
		Total:     pricing.Sum(lo.Map(items, func(it models.CartItem, _ int) float64 { return it.TotalPrice })...),
	}
}
