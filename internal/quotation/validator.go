// Package quotation validates the quotation request form and turns a valid
// form plus the cart into a printable quotation.
package quotation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
)

const (
	msgCompanyRequired = "El nombre de la empresa es requerido"
	msgCompanyTooShort = "El nombre debe tener al menos 2 caracteres"
	msgCompanyChars    = "Solo se permiten letras, espacios y caracteres especiales básicos"

	msgTaxIDRequired = "El CUIL es requerido"
	msgTaxIDDigits   = "El CUIL debe tener 11 dígitos"
	msgTaxIDInvalid  = "CUIL inválido"

	msgEmailRequired = "El email es requerido"
	msgEmailFormat   = "Formato de email inválido"
)

// space is the whitespace class browsers use for form input: ASCII space and
// controls, vertical tab, the Unicode separators and the byte order mark.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	companyPattern    = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ` + space + `&.,()-]+$`)
	emailPattern      = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	taxIDDigits       = regexp.MustCompile(`^\d{11}$`)
	taxIDSeparators   = regexp.MustCompile(`[-` + space + `]`)
	taxIDDisallowed   = regexp.MustCompile(`[^0-9-` + space + `]`)
	taxIDCheckWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}

	return unicode.Is(unicode.Z, r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// ValidateCompany returns an empty string when the company name is usable,
// otherwise the message to show next to the field.
func ValidateCompany(company string) string {
	trimmed := trimSpace(company)

	switch {
	case trimmed == "":
		return msgCompanyRequired
	case utf8.RuneCountInString(trimmed) < 2:
		return msgCompanyTooShort
	case !companyPattern.MatchString(company):
		return msgCompanyChars
	}

	return ""
}

// ValidateTaxID checks an Argentine CUIL. Hyphens and spaces are ignored;
// the remaining 11 digits must carry a correct mod 11 check digit.
func ValidateTaxID(taxID string) string {
	if trimSpace(taxID) == "" {
		return msgTaxIDRequired
	}

	digits := taxIDSeparators.ReplaceAllString(taxID, "")
	if !taxIDDigits.MatchString(digits) {
		return msgTaxIDDigits
	}

	if checkDigit(digits) != int(digits[10]-'0') {
		return msgTaxIDInvalid
	}

	return ""
}

// checkDigit expects exactly 11 ASCII digits.
func checkDigit(digits string) int {
	sum := 0
	for i, w := range taxIDCheckWeights {
		sum += int(digits[i]-'0') * w
	}

	switch r := sum % 11; r {
	case 0:
		return 0
	case 1:
		return 9
	default:
		return 11 - r
	}
}

func ValidateEmail(email string) string {
	if trimSpace(email) == "" {
		return msgEmailRequired
	}

	if !emailPattern.MatchString(email) {
		return msgEmailFormat
	}

	return ""
}

// SanitizeTaxIDInput drops everything but digits, hyphens and whitespace, the
// way the tax ID field filters keystrokes.
func SanitizeTaxIDInput(value string) string {
	return taxIDDisallowed.ReplaceAllString(value, "")
}

func Validate(form models.QuotationForm) models.QuotationFormErrors {
	return models.QuotationFormErrors{
		Company: ValidateCompany(form.Company),
		TaxID:   ValidateTaxID(form.TaxID),
		Email:   ValidateEmail(form.Email),
	}
}

// IsValid reports whether a quotation can be issued: every field passes and
// the cart holds at least one line.
func IsValid(form models.QuotationForm, items []models.CartItem) bool {
	return Validate(form).Empty() && len(items) > 0
}

// Check runs the full form validation against the cart contents.
func Check(form models.QuotationForm, items []models.CartItem) models.QuotationValidation {
	errs := Validate(form)

	return models.QuotationValidation{
		Valid:     errs.Empty() && len(items) > 0,
		Errors:    errs,
		CartEmpty: len(items) == 0,
	}
}
