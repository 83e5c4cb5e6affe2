package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/pricing"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils"
)

type CatalogService interface {
	ListProducts(ctx context.Context, criteria models.FilterCriteria) (*models.ProductList, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetFilters(ctx context.Context) (*models.CatalogFilters, error)
	QuotePrice(ctx context.Context, id int64, quantity int) (*models.PriceQuote, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	latency time.Duration
}

// NewCatalogService serves reads from c. Listing and detail reads wait for
// latency first, emulating a remote catalog; the wait ends early when the
// request is cancelled.
func NewCatalogService(c *catalog.Catalog, latency time.Duration) CatalogService {
	return &catalogService{catalog: c, latency: latency}
}

func (s *catalogService) ListProducts(ctx context.Context, criteria models.FilterCriteria) (*models.ProductList, error) {
	logger := middleware.LoggerFromContext(ctx)

	if err := utils.Wait(ctx, s.latency); err != nil {
		return nil, fmt.Errorf("listing products interrupted: %w", err)
	}

	products := s.catalog.Search(criteria)

	logger.Debug("Catalog filtered",
		slog.String("category", criteria.Category),
		slog.String("search", criteria.Search),
		slog.String("sort", string(criteria.SortBy)),
		slog.Int("matches", len(products)),
	)

	return &models.ProductList{
		Products: products,
		Total:    len(products),
		Criteria: criteria,
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if err := utils.Wait(ctx, s.latency); err != nil {
		return nil, fmt.Errorf("loading product interrupted: %w", err)
	}

	product, ok := s.catalog.FindByID(id)
	if !ok {
		return nil, errors.NotFoundError("Product not found").WithDetail(fmt.Sprintf("no product with id %d", id))
	}

	return &product, nil
}

func (s *catalogService) GetFilters(_ context.Context) (*models.CatalogFilters, error) {
	filters := s.catalog.Filters()

	return &filters, nil
}

func (s *catalogService) QuotePrice(_ context.Context, id int64, quantity int) (*models.PriceQuote, error) {
	if quantity < 1 {
		return nil, errors.AddValidationError("quantity", "must be at least 1")
	}

	product, ok := s.catalog.FindByID(id)
	if !ok {
		return nil, errors.NotFoundError("Product not found").WithDetail(fmt.Sprintf("no product with id %d", id))
	}

	quote := pricing.Calculate(product, quantity)

	return &quote, nil
}
