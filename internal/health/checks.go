package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/catalog"
	"github.com/aaravmahajanofficial/swag-catalog/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const version = "1.0.0"

// NewHealthHandler registers a catalog check always, plus the Postgres and
// Redis checks when those backends are in use.
func NewHealthHandler(cfg *config.Config, c *catalog.Catalog) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:    "catalog",
			Timeout: time.Second,
			Check: func(context.Context) error {
				if c == nil || c.Len() == 0 {
					return fmt.Errorf("catalog is empty")
				}
				return nil
			},
		},
	}

	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if cfg.RedisConnect.Enabled {
		checks = append(checks, health.Config{
			Name:    "redis",
			Timeout: 2 * time.Second,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
