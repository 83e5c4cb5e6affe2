package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/quotation"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Message struct {
	To          string
	Subject     string
	Content     string
	HTMLContent string
}

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
	GetSendGridClient() *sg.Client
}

type emailService struct {
	client    *sg.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sg.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) Send(ctx context.Context, msg *Message) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))
	personalization.Subject = msg.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", msg.Content))
	if msg.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func (e *emailService) GetSendGridClient() *sg.Client {
	return e.client
}

// QuotationMailer delivers the printable quotation to the requester.
type QuotationMailer struct {
	email EmailService
}

func NewQuotationMailer(email EmailService) *QuotationMailer {
	return &QuotationMailer{email: email}
}

func (m *QuotationMailer) Name() string {
	return "mail"
}

func (m *QuotationMailer) Export(ctx context.Context, q models.Quotation, _ string) error {
	html, err := quotation.RenderString(q)
	if err != nil {
		return err
	}

	return m.email.Send(ctx, &Message{
		To:          q.Email,
		Subject:     fmt.Sprintf("Cotización %s", q.Number),
		Content:     plainText(q),
		HTMLContent: html,
	})
}

func plainText(q models.Quotation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cotización %s\n", q.Number)
	fmt.Fprintf(&b, "Empresa: %s\nCUIL: %s\n\n", q.Company, q.TaxID)

	for _, it := range q.Items {
		fmt.Fprintf(&b, "%d x %s (%s c/u) = %s\n", it.Quantity, it.Name,
			quotation.FormatPrice(it.UnitPrice), quotation.FormatPrice(it.TotalPrice))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", quotation.FormatPrice(q.Total))

	return b.String()
}
