package render

import (
	"testing"
	"time"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() domain.Invoice {
	inv := domain.Invoice{
		Number:           "001/VI/AGS-I/2025",
		InvoiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		SenderCompany:    "AGS Indonesia",
		SenderAddress:    "Jl. Sudirman 1\nJakarta",
		RecipientCompany: "Acme Corp",
		RecipientAddress: "12 Main St\nSpringfield",
		Items: []domain.Item{
			{Description: "Consulting", Quantity: 2, Price: 500},
		},
		AccountName:   "AGS Indonesia",
		AccountNumber: "1234567890",
		BankName:      "BCA",
		Currency:      "USD",
		TaxMode:       domain.TaxModePercentage,
		TaxRate:       10,
		Notes:         "Payment due within 14 days",
	}
	inv.Normalize()
	return inv
}

func TestRenderHTML(t *testing.T) {
	html, err := NewRenderer().RenderHTML(sampleInvoice())
	require.NoError(t, err)

	assert.Contains(t, html, "001/VI/AGS-I/2025")
	assert.Contains(t, html, "AGS Indonesia")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "June 1, 2025")
	assert.Contains(t, html, "June 15, 2025")
	assert.Contains(t, html, "Consulting")
	assert.Contains(t, html, "$1,000.00")
	assert.Contains(t, html, "Tax (10%)")
	assert.Contains(t, html, "$100.00")
	assert.Contains(t, html, "$1,100.00")
	assert.Contains(t, html, "Payment due within 14 days")
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	inv := sampleInvoice()
	inv.RecipientCompany = `<script>alert("x")</script>`
	html, err := NewRenderer().RenderHTML(inv)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderHTMLMultilineAddress(t *testing.T) {
	html, err := NewRenderer().RenderHTML(sampleInvoice())
	require.NoError(t, err)
	assert.Contains(t, html, "Jl. Sudirman 1<br>")
	assert.Contains(t, html, "Jakarta<br>")
}
