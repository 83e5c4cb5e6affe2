package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/swag-catalog/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

// New opens the Postgres pool behind the catalog source. Queries are traced
// through otelsql.
func New(ctx context.Context, cfg *config.Config) (*Repository, CatalogRepository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(), otelsql.WithSpanOptions(otelsql.SpanOptions{
		DisableErrSkip: true,
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{DB: db}, NewCatalogRepo(db), nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
