package quotation_test

import (
	"testing"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/quotation"
	"github.com/stretchr/testify/assert"
)

func TestValidateCompany(t *testing.T) {
	tests := []struct {
		name    string
		company string
		want    string
	}{
		{name: "Valid Name", company: "Promociones del Sur S.A.", want: ""},
		{name: "Accents And Symbols", company: "Diseño & Compañía (Córdoba), S.R.L.", want: ""},
		{name: "Exactly Two Characters", company: "AB", want: ""},
		{name: "Empty", company: "", want: "El nombre de la empresa es requerido"},
		{name: "Only Spaces", company: "   ", want: "El nombre de la empresa es requerido"},
		{name: "Too Short", company: " A ", want: "El nombre debe tener al menos 2 caracteres"},
		{name: "Digits", company: "Empresa 2000", want: "Solo se permiten letras, espacios y caracteres especiales básicos"},
		{name: "Markup", company: "<b>Empresa</b>", want: "Solo se permiten letras, espacios y caracteres especiales básicos"},
		{name: "No-Break Space", company: "ACME\u00a0SA", want: ""},
		{name: "Ideographic Space", company: "ACME\u3000SA", want: ""},
		{name: "Only No-Break Spaces", company: "\u00a0\u2003\ufeff", want: "El nombre de la empresa es requerido"},
		{name: "Padded Single Letter", company: "\u00a0A\u00a0", want: "El nombre debe tener al menos 2 caracteres"},
		{name: "Next Line Is Not Space", company: "ACME\u0085SA", want: "Solo se permiten letras, espacios y caracteres especiales básicos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quotation.ValidateCompany(tt.company))
		})
	}
}

func TestValidateTaxID(t *testing.T) {
	tests := []struct {
		name  string
		taxID string
		want  string
	}{
		{name: "Valid With Hyphens", taxID: "20-17254359-7", want: ""},
		{name: "Valid Plain", taxID: "20172543597", want: ""},
		{name: "Valid With Spaces", taxID: "20 12345678 6", want: ""},
		{name: "Remainder One Maps To Nine", taxID: "10001000009", want: ""},
		{name: "Remainder Zero Maps To Zero", taxID: "00000000000", want: ""},
		{name: "Wrong Check Digit", taxID: "20-12345678-9", want: "CUIL inválido"},
		{name: "Off By One Check Digit", taxID: "20-17254359-8", want: "CUIL inválido"},
		{name: "Empty", taxID: "", want: "El CUIL es requerido"},
		{name: "Only Spaces", taxID: "  ", want: "El CUIL es requerido"},
		{name: "Too Short", taxID: "20-1234567-8", want: "El CUIL debe tener 11 dígitos"},
		{name: "Too Long", taxID: "20-123456789-8", want: "El CUIL debe tener 11 dígitos"},
		{name: "Letters", taxID: "20-1234567A-6", want: "El CUIL debe tener 11 dígitos"},
		{name: "Valid With No-Break Spaces", taxID: "20\u00a012345678\u00a06", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quotation.ValidateTaxID(tt.taxID))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{name: "Valid", email: "ejemplo@empresa.com", want: ""},
		{name: "Subdomain", email: "ventas@mail.empresa.com.ar", want: ""},
		{name: "Empty", email: "", want: "El email es requerido"},
		{name: "Only Spaces", email: " ", want: "El email es requerido"},
		{name: "Missing Dot", email: "ejemplo@empresa", want: "Formato de email inválido"},
		{name: "Missing At", email: "ejemplo empresa.com", want: "Formato de email inválido"},
		{name: "Inner Space", email: "eje mplo@empresa.com", want: "Formato de email inválido"},
		{name: "Two At Signs", email: "a@b@empresa.com", want: "Formato de email inválido"},
		{name: "Inner No-Break Space", email: "a\u00a0b@empresa.com", want: "Formato de email inválido"},
		{name: "Inner Vertical Tab", email: "a\vb@empresa.com", want: "Formato de email inválido"},
		{name: "Only Em Spaces", email: "\u2003\u2003", want: "El email es requerido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quotation.ValidateEmail(tt.email))
		})
	}
}

func TestSanitizeTaxIDInput(t *testing.T) {
	assert.Equal(t, "20-12345678-6", quotation.SanitizeTaxIDInput("20-1234a5678-6!"))
	assert.Equal(t, "20 12 ", quotation.SanitizeTaxIDInput("20 12 ñ"))
	assert.Empty(t, quotation.SanitizeTaxIDInput("abc"))
}

func TestIsValid(t *testing.T) {
	valid := models.QuotationForm{Company: "Promo Sur", TaxID: "20-17254359-7", Email: "compras@promosur.com"}
	items := []models.CartItem{{Product: models.Product{ID: 1}, Quantity: 1}}

	t.Run("Valid Form And Cart", func(t *testing.T) {
		assert.True(t, quotation.IsValid(valid, items))

		result := quotation.Check(valid, items)
		assert.True(t, result.Valid)
		assert.False(t, result.CartEmpty)
		assert.True(t, result.Errors.Empty())
	})

	t.Run("Empty Cart", func(t *testing.T) {
		assert.False(t, quotation.IsValid(valid, nil))

		result := quotation.Check(valid, []models.CartItem{})
		assert.False(t, result.Valid)
		assert.True(t, result.CartEmpty)
		assert.True(t, result.Errors.Empty())
	})

	t.Run("Each Failing Field Reported", func(t *testing.T) {
		form := models.QuotationForm{Company: "A", TaxID: "20-12345678-9", Email: "ejemplo@empresa"}

		result := quotation.Check(form, items)

		assert.False(t, result.Valid)
		assert.Equal(t, models.QuotationFormErrors{
			Company: "El nombre debe tener al menos 2 caracteres",
			TaxID:   "CUIL inválido",
			Email:   "Formato de email inválido",
		}, result.Errors)
		assert.False(t, quotation.IsValid(form, items))
	})
}
