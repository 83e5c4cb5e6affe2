package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/stretchr/testify/mock"
)

type QuotationService struct {
	mock.Mock
}

func (m *QuotationService) Validate(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.QuotationValidation, error) {
	args := m.Called(ctx, sessionID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.QuotationValidation), args.Error(1)
}

func (m *QuotationService) Issue(ctx context.Context, sessionID string, form *models.QuotationForm) (*models.Quotation, error) {
	args := m.Called(ctx, sessionID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Quotation), args.Error(1)
}

// Exporter satisfies service.Exporter.
type Exporter struct {
	mock.Mock
	ExporterName string
}

func (m *Exporter) Name() string {
	return m.ExporterName
}

func (m *Exporter) Export(ctx context.Context, q models.Quotation, sessionID string) error {
	args := m.Called(ctx, q, sessionID)

	return args.Error(0)
}
