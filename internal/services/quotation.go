package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/metrics"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/quotation"
)

type QuotationService interface {
	Validate(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.QuotationValidation, error)
	Issue(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.Quotation, error)
}

// Exporter hands an issued quotation to an outside system. Failures are
// reported but never undo the quotation.
type Exporter interface {
	Name() string
	Export(ctx context.Context, q models.Quotation, sessionID string) error
}

type quotationService struct {
	carts     CartService
	exporters []Exporter
	now       func() time.Time
}

func NewQuotationService(carts CartService, exporters ...Exporter) QuotationService {
	return &quotationService{carts: carts, exporters: exporters, now: time.Now}
}

func (s *quotationService) Validate(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.QuotationValidation, error) {
	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := quotation.Check(*form, c.Items)

	return &result, nil
}

func (s *quotationService) Issue(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.Quotation, error) {
	logger := middleware.LoggerFromContext(ctx)

	c, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := quotation.Check(*form, c.Items)
	if !result.Valid {
		logger.Warn("Rejected quotation request", slog.Bool("cart_empty", result.CartEmpty))
		return nil, errors.UnprocessableError("Quotation form is invalid").WithFields(result)
	}

	q := quotation.Build(*form, c.Items, s.now())
	metrics.QuotationIssued()

	logger.Info("Quotation issued",
		slog.String("number", q.Number.String()),
		slog.Int("items", len(q.Items)),
		slog.Float64("total", q.Total),
	)

	for _, exp := range s.exporters {
		err := exp.Export(ctx, q, sessionID)
		metrics.QuotationExported(exp.Name(), err)

		if err != nil {
			logger.Error("Quotation export failed",
				slog.String("exporter", exp.Name()),
				slog.String("number", q.Number.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return &q, nil
}
