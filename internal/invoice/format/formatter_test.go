package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", Currency(1234.5, "USD"))
	assert.Equal(t, "¥1,000", Currency(1000, "JPY"))

	// IDR renders zero-decimal with Indonesian grouping.
	idr := Currency(1500000, "IDR")
	assert.Equal(t, "Rp1.500.000", idr)
	assert.NotContains(t, idr, ",")
}

func TestCurrencyUnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "XXX 10.00", Currency(10, "XXX"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "June 1, 2025", Date(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", Date(time.Time{}))
}

func TestInvoiceNumber(t *testing.T) {
	issued := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	out, err := InvoiceNumber(DefaultNumberTemplate, issued, 1)
	require.NoError(t, err)
	assert.Equal(t, "001/VI/AGS-I/2025", out)

	out, err = InvoiceNumber(DefaultNumberTemplate, issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "042/VI/AGS-I/2025", out)

	out, err = InvoiceNumber("INV-{YYYY}{MM}{DD}-{SEQ6}", issued, 7)
	require.NoError(t, err)
	assert.Equal(t, "INV-20250309-000007", out)
}

func TestInvoiceNumberErrors(t *testing.T) {
	issued := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := InvoiceNumber("", issued, 1)
	assert.Error(t, err)

	_, err = InvoiceNumber(DefaultNumberTemplate, issued, 0)
	assert.Error(t, err)

	_, err = InvoiceNumber("{BOGUS}", issued, 1)
	assert.Error(t, err)
}
