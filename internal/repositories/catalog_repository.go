package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils"
	"github.com/lib/pq"
)

// CatalogRepository reads the whole catalog dataset in one pass. The catalog
// is loaded once at start-up and never written through this repository.
type CatalogRepository interface {
	LoadDataset(ctx context.Context) (*catalog.Dataset, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

const (
	productsQuery = `SELECT id, name, sku, category, supplier, base_price, stock, status,
			description, images, colors, sizes, features, price_breaks
		FROM products
		ORDER BY id`
	categoriesQuery = `SELECT id, name, icon FROM categories ORDER BY position, id`
	suppliersQuery  = `SELECT id, name FROM suppliers ORDER BY name`
	priceBandsQuery = `SELECT min_price, max_price FROM price_bands ORDER BY min_price`
	colorsQuery     = `SELECT name, value FROM colors ORDER BY name`
)

func (r *catalogRepository) LoadDataset(ctx context.Context) (*catalog.Dataset, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	products, err := r.products(dbCtx)
	if err != nil {
		return nil, err
	}

	categories, err := queryAll(dbCtx, r.DB, categoriesQuery, func(rows *sql.Rows) (models.Category, error) {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Icon)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}

	suppliers, err := queryAll(dbCtx, r.DB, suppliersQuery, func(rows *sql.Rows) (models.Supplier, error) {
		var s models.Supplier
		err := rows.Scan(&s.ID, &s.Name)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}

	bands, err := queryAll(dbCtx, r.DB, priceBandsQuery, func(rows *sql.Rows) (models.PriceBand, error) {
		var b models.PriceBand
		err := rows.Scan(&b.Min, &b.Max)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("querying price bands: %w", err)
	}

	colors, err := queryAll(dbCtx, r.DB, colorsQuery, func(rows *sql.Rows) (models.Color, error) {
		var c models.Color
		err := rows.Scan(&c.Name, &c.Value)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("querying colors: %w", err)
	}

	return &catalog.Dataset{
		Products:   products,
		Categories: categories,
		Suppliers:  suppliers,
		PriceBands: bands,
		Colors:     colors,
	}, nil
}

func (r *catalogRepository) products(ctx context.Context) ([]models.Product, error) {
	products, err := queryAll(ctx, r.DB, productsQuery, func(rows *sql.Rows) (models.Product, error) {
		var (
			p           models.Product
			description sql.NullString
			breaks      []byte
		)

		err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Supplier, &p.BasePrice, &p.Stock, &p.Status,
			&description, pq.Array(&p.Images), pq.Array(&p.Colors), pq.Array(&p.Sizes), pq.Array(&p.Features), &breaks)
		if err != nil {
			return p, err
		}

		p.Description = description.String

		if len(breaks) > 0 {
			if err := json.Unmarshal(breaks, &p.PriceBreaks); err != nil {
				return p, fmt.Errorf("decoding price breaks of product %d: %w", p.ID, err)
			}
		}

		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	return products, nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
