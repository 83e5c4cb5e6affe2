package models

import (
	"time"

	"github.com/google/uuid"
)

type QuotationForm struct {
	Company string `json:"company"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"`
}

// QuotationFormErrors holds one message per failing field; empty means valid.
type QuotationFormErrors struct {
	Company string `json:"company,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (e QuotationFormErrors) Empty() bool {
	return e.Company == "" && e.TaxID == "" && e.Email == ""
}

type QuotationValidation struct {
	Valid     bool                `json:"valid"`
	Errors    QuotationFormErrors `json:"errors"`
	CartEmpty bool                `json:"cart_empty"`
}

type Quotation struct {
	Number   uuid.UUID  `json:"number"`
	IssuedAt time.Time  `json:"issued_at"`
	Company  string     `json:"company"`
	TaxID    string     `json:"tax_id"`
	Email    string     `json:"email"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
}

// QuotationRequestedEvent is published once a quotation has been issued.
type QuotationRequestedEvent struct {
	Number    uuid.UUID `json:"number"`
	SessionID string    `json:"session_id"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Items     int       `json:"items"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	IssuedAt  time.Time `json:"issued_at"`
}
