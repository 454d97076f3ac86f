// Package domain contains the invoice data model and total computation.
package domain

import (
	"time"
)

// TaxMode selects how the tax rate field is interpreted.
type TaxMode string

const (
	// TaxModePercentage treats the rate as a percentage of the subtotal.
	TaxModePercentage TaxMode = "percentage"
	// TaxModeFixed treats the rate as an absolute amount.
	TaxModeFixed TaxMode = "fixed"
)

// SupportedCurrencies lists the currency codes the formatter knows about.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "IDR", "SGD", "MYR"}

// Item is a single invoice line. Total is derived and recomputed on
// normalization, never trusted from input.
type Item struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
	Price       float64 `json:"price" validate:"gte=0"`
	Total       float64 `json:"total"`
}

// Invoice is a complete invoice record. Subtotal, TaxAmount and GrandTotal
// are derived from Items and the tax fields.
type Invoice struct {
	Number           string    `json:"invoiceNumber"`
	InvoiceDate      time.Time `json:"invoiceDate" validate:"required"`
	DueDate          time.Time `json:"dueDate"`
	SenderCompany    string    `json:"senderCompany" validate:"required"`
	SenderAddress    string    `json:"senderAddress" validate:"required"`
	RecipientCompany string    `json:"recipientCompany" validate:"required"`
	RecipientAddress string    `json:"recipientAddress" validate:"required"`
	Items            []Item    `json:"items" validate:"required,min=1,dive"`
	Notes            string    `json:"notes,omitempty"`
	AccountName      string    `json:"accountName" validate:"required"`
	AccountNumber    string    `json:"accountNumber" validate:"required"`
	BankName         string    `json:"bankName" validate:"required"`
	Currency         string    `json:"currency" validate:"required,oneof=USD EUR GBP JPY IDR SGD MYR"`
	TaxMode          TaxMode   `json:"taxType" validate:"required,oneof=percentage fixed"`
	TaxRate          float64   `json:"taxRate" validate:"gte=0"`
	Subtotal         float64   `json:"subtotal"`
	TaxAmount        float64   `json:"taxAmount"`
	GrandTotal       float64   `json:"grandTotal"`
}

// Normalize recomputes every derived field in place. It is called before any
// persist or render so stored totals can never drift from their inputs.
func (inv *Invoice) Normalize() {
	for i := range inv.Items {
		inv.Items[i].Total = lineTotal(inv.Items[i])
	}
	inv.Subtotal, inv.TaxAmount, inv.GrandTotal = ComputeTotals(inv.Items, inv.TaxMode, inv.TaxRate)
}
