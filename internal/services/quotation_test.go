package service_test

import (
	"errors"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
	"github.com/aaravmahajanofficial/swag-catalog/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var validForm = models.QuotationForm{Company: "Promo Sur", TaxID: "20-17254359-7", Email: "compras@promosur.com"}

func fullCart() *models.Cart {
	return &models.Cart{
		SessionID: testSession,
		Items: []models.CartItem{
			{Product: models.Product{ID: shirtID, Name: "Remera algodón"}, Quantity: 5, UnitPrice: 45, TotalPrice: 225},
		},
		Quantity: 5,
		Total:    225,
	}
}

func TestValidateQuotation(t *testing.T) {
	ctx := t.Context()

	t.Run("Valid", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(fullCart(), nil).Once()
		svc := service.NewQuotationService(carts)

		result, err := svc.Validate(ctx, testSession, &validForm)

		require.NoError(t, err)
		assert.True(t, result.Valid)
		carts.AssertExpectations(t)
	})

	t.Run("Empty Cart", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(&models.Cart{Items: []models.CartItem{}}, nil).Once()
		svc := service.NewQuotationService(carts)

		result, err := svc.Validate(ctx, testSession, &validForm)

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.True(t, result.CartEmpty)
	})

	t.Run("Failure - Cart Error", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(nil, appErrors.StorageError("Failed to load cart")).Once()
		svc := service.NewQuotationService(carts)

		result, err := svc.Validate(ctx, testSession, &validForm)

		assert.Nil(t, result)
		assertAppError(t, err, appErrors.ErrCodeStorageError)
	})
}

func TestIssueQuotation(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Exports", func(t *testing.T) {
		// Arrange
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(fullCart(), nil).Once()

		mailer := &mocks.Exporter{ExporterName: "mail"}
		mailer.On("Export", mock.Anything, mock.AnythingOfType("models.Quotation"), testSession).Return(nil).Once()
		events := &mocks.Exporter{ExporterName: "events"}
		events.On("Export", mock.Anything, mock.AnythingOfType("models.Quotation"), testSession).Return(nil).Once()

		svc := service.NewQuotationService(carts, mailer, events)

		// Act
		q, err := svc.Issue(ctx, testSession, &validForm)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, q.Number)
		assert.Equal(t, "Promo Sur", q.Company)
		assert.Equal(t, 225.0, q.Total)
		require.Len(t, q.Items, 1)
		carts.AssertExpectations(t)
		mailer.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("Export Failure Does Not Fail Quotation", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(fullCart(), nil).Once()

		mailer := &mocks.Exporter{ExporterName: "mail"}
		mailer.On("Export", mock.Anything, mock.Anything, testSession).Return(errors.New("sendgrid: 401")).Once()
		events := &mocks.Exporter{ExporterName: "events"}
		events.On("Export", mock.Anything, mock.Anything, testSession).Return(nil).Once()

		svc := service.NewQuotationService(carts, mailer, events)

		q, err := svc.Issue(ctx, testSession, &validForm)

		require.NoError(t, err)
		assert.NotNil(t, q)
		events.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Form", func(t *testing.T) {
		// Arrange
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(fullCart(), nil).Once()
		mailer := &mocks.Exporter{ExporterName: "mail"}
		svc := service.NewQuotationService(carts, mailer)

		form := models.QuotationForm{Company: "Promo Sur", TaxID: "20-12345678-9", Email: "compras@promosur.com"}

		// Act
		q, err := svc.Issue(ctx, testSession, &form)

		// Assert
		assert.Nil(t, q)
		appErr := assertAppError(t, err, appErrors.ErrCodeUnprocessable)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)

		fields, ok := appErr.Fields.(models.QuotationValidation)
		require.True(t, ok)
		assert.Equal(t, "CUIL inválido", fields.Errors.TaxID)
		assert.Empty(t, fields.Errors.Company)
		mailer.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, testSession).Return(&models.Cart{Items: []models.CartItem{}}, nil).Once()
		svc := service.NewQuotationService(carts)

		_, err := svc.Issue(ctx, testSession, &validForm)

		appErr := assertAppError(t, err, appErrors.ErrCodeUnprocessable)
		assert.True(t, appErr.Fields.(models.QuotationValidation).CartEmpty)
	})
}
