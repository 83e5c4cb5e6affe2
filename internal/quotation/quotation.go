package quotation

import (
	"html"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/pricing"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

var textPolicy = bluemonday.StrictPolicy()

// Build assembles a quotation from a form that already passed Validate. Free
// text is stripped of markup; the email is kept exactly as validated. The
// items are copied so later cart changes do not leak into an issued quotation.
func Build(form models.QuotationForm, items []models.CartItem, issuedAt time.Time) models.Quotation {
	return models.Quotation{
		Number:   uuid.New(),
		IssuedAt: issuedAt.UTC(),
		Company:  cleanText(form.Company),
		TaxID:    trimSpace(SanitizeTaxIDInput(form.TaxID)),
		Email:    form.Email,
		Items:    slices.Clone(items),
		Total:    Total(items),
	}
}

// Total sums the line totals.
func Total(items []models.CartItem) float64 {
	return pricing.Sum(lo.Map(items, func(it models.CartItem, _ int) float64 { return it.TotalPrice })...)
}

// Event is the summary published once q has been issued for a session.
func Event(q models.Quotation, sessionID string) models.QuotationRequestedEvent {
	return models.QuotationRequestedEvent{
		Number:    q.Number,
		SessionID: sessionID,
		Company:   q.Company,
		Email:     q.Email,
		Items:     len(q.Items),
		Quantity:  lo.SumBy(q.Items, func(it models.CartItem) int { return it.Quantity }),
		Total:     q.Total,
		IssuedAt:  q.IssuedAt,
	}
}

// cleanText drops tags and returns plain text; the policy escapes entities,
// which are undone here because rendering escapes again.
func cleanText(s string) string {
	return trimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
