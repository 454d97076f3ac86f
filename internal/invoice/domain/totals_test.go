package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsSubtotal(t *testing.T) {
	items := []Item{
		{Description: "Design", Quantity: 2, Price: 150},
		{Description: "Development", Quantity: 10, Price: 80},
		{Description: "Hosting", Quantity: 1, Price: 25.5},
	}

	subtotal, _, _ := ComputeTotals(items, TaxModePercentage, 0)
	assert.Equal(t, 1125.5, subtotal)
}

func TestComputeTotalsPercentage(t *testing.T) {
	items := []Item{{Description: "Work", Quantity: 1, Price: 100}}

	subtotal, tax, grand := ComputeTotals(items, TaxModePercentage, 10)
	assert.Equal(t, 100.0, subtotal)
	assert.Equal(t, 10.0, tax)
	assert.Equal(t, 110.0, grand)
}

func TestComputeTotalsFixed(t *testing.T) {
	items := []Item{{Description: "Work", Quantity: 1, Price: 100}}

	subtotal, tax, grand := ComputeTotals(items, TaxModeFixed, 15)
	assert.Equal(t, 100.0, subtotal)
	assert.Equal(t, 15.0, tax)
	assert.Equal(t, 115.0, grand)
}

func TestComputeTotalsPartialInput(t *testing.T) {
	// Rows mid-edit carry zero or negative values; they contribute nothing
	// instead of erroring.
	items := []Item{
		{Description: "Done", Quantity: 2, Price: 50},
		{Description: "", Quantity: 0, Price: 0},
		{Description: "Typo", Quantity: -3, Price: 10},
		{Description: "Typo2", Quantity: 1, Price: -10},
	}

	subtotal, _, _ := ComputeTotals(items, TaxModePercentage, 0)
	assert.Equal(t, 100.0, subtotal)
}

func TestNormalizeRecomputesDerivedFields(t *testing.T) {
	inv := Invoice{
		Items: []Item{
			{Description: "Work", Quantity: 3, Price: 40, Total: 999},
		},
		TaxMode: TaxModePercentage,
		TaxRate: 10,
		// Stale values that must be overwritten.
		Subtotal:   1,
		TaxAmount:  2,
		GrandTotal: 3,
	}

	inv.Normalize()

	assert.Equal(t, 120.0, inv.Items[0].Total)
	assert.Equal(t, 120.0, inv.Subtotal)
	assert.Equal(t, 12.0, inv.TaxAmount)
	assert.Equal(t, 132.0, inv.GrandTotal)
}

func TestValidate(t *testing.T) {
	valid := Invoice{
		InvoiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SenderCompany:    "AGS Indonesia",
		SenderAddress:    "Jl. Sudirman 1, Jakarta",
		RecipientCompany: "Acme Corp",
		RecipientAddress: "Acme Street 2",
		Items:            []Item{{Description: "Work", Quantity: 1, Price: 100}},
		AccountName:      "AGS Indonesia",
		AccountNumber:    "1234567890",
		BankName:         "BCA",
		Currency:         "IDR",
		TaxMode:          TaxModePercentage,
		TaxRate:          11,
	}
	assert.NoError(t, Validate(valid))

	missing := valid
	missing.RecipientCompany = ""
	missing.Items = nil
	err := Validate(missing)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	fields := make(map[string]bool)
	for _, fe := range verr.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["recipientCompany"])
	assert.True(t, fields["items"])
}

func TestValidateRejectsNegativeRateAndBadQuantity(t *testing.T) {
	inv := Invoice{
		InvoiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SenderCompany:    "AGS Indonesia",
		SenderAddress:    "Jl. Sudirman 1, Jakarta",
		RecipientCompany: "Acme Corp",
		RecipientAddress: "Acme Street 2",
		Items:            []Item{{Description: "Work", Quantity: 0, Price: -5}},
		AccountName:      "AGS Indonesia",
		AccountNumber:    "1234567890",
		BankName:         "BCA",
		Currency:         "IDR",
		TaxMode:          TaxModeFixed,
		TaxRate:          -1,
	}

	err := Validate(inv)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 3)
}
