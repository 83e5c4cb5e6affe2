package quotation

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/quotation.html.tmpl
var templateFS embed.FS

var priceFormat = message.NewPrinter(language.MustParse("es-AR"))

var printable = template.Must(template.New("quotation.html.tmpl").
	Funcs(template.FuncMap{
		"price": FormatPrice,
		"date":  func(q models.Quotation) string { return q.IssuedAt.Format("02/01/2006 15:04") },
	}).
	ParseFS(templateFS, "templates/quotation.html.tmpl"))

// FormatPrice renders an amount the way the storefront shows prices.
func FormatPrice(amount float64) string {
	return "$ " + priceFormat.Sprint(number.Decimal(amount, number.Scale(2)))
}

// Render writes q as a standalone printable HTML document.
func Render(w io.Writer, q models.Quotation) error {
	var buf bytes.Buffer
	if err := printable.Execute(&buf, q); err != nil {
		return fmt.Errorf("failed to render quotation %s: %w", q.Number, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write quotation %s: %w", q.Number, err)
	}

	return nil
}

// RenderString is Render into a string, used for the mail body.
func RenderString(q models.Quotation) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, q); err != nil {
		return "", err
	}

	return buf.String(), nil
}
