package pdf

import (
	"context"
	"io"
	"testing"
	"time"

	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice(t *testing.T) {
	inv := invoicedomain.Invoice{
		Number:           "001/VI/AGS-I/2025",
		InvoiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:          time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		SenderCompany:    "AGS Indonesia",
		SenderAddress:    "Jl. Sudirman 1\nJakarta",
		RecipientCompany: "Acme Corp",
		RecipientAddress: "12 Main St",
		Items: []invoicedomain.Item{
			{Description: "Consulting", Quantity: 2, Price: 500},
		},
		AccountName:   "AGS Indonesia",
		AccountNumber: "1234567890",
		BankName:      "BCA",
		Currency:      "USD",
		TaxMode:       invoicedomain.TaxModePercentage,
		TaxRate:       10,
		Notes:         "Payment due within 14 days",
	}
	inv.Normalize()

	r, err := New().GenerateInvoice(context.Background(), inv)
	require.NoError(t, err)
	require.NotNil(t, r)

	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
