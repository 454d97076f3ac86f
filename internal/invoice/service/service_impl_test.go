package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/config"
	historyservice "github.com/smallbiznis/invoicer/internal/history/service"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/invoice/render"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"github.com/smallbiznis/invoicer/internal/numbering"
	"github.com/smallbiznis/invoicer/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	store := kvstore.NewMemoryStore()
	fakeClock := clock.NewFakeClock(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	holder := config.NewStaticInvoiceConfigHolder(config.DefaultInvoiceConfig())
	log := zap.NewNop()

	history := historyservice.New(historyservice.ServiceParam{
		Store: store,
		Clock: fakeClock,
		Log:   log,
	})
	seq := numbering.NewSequence(numbering.SequenceParam{
		Store:  store,
		Holder: holder,
		Log:    log,
	})

	return NewService(ServiceParam{
		Renderer: render.NewRenderer(),
		PDF:      pdf.New(),
		Sequence: seq,
		History:  history,
		Holder:   holder,
		Clock:    fakeClock,
		Log:      log,
	})
}

func validInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SenderCompany:    "AGS Indonesia",
		SenderAddress:    "Jl. Sudirman 1",
		RecipientCompany: "Acme Corp",
		RecipientAddress: "12 Main St",
		Items: []domain.Item{
			{Description: "Consulting", Quantity: 2, Price: 500},
		},
		AccountName:   "AGS Indonesia",
		AccountNumber: "1234567890",
		BankName:      "BCA",
		Currency:      "USD",
		TaxMode:       domain.TaxModePercentage,
		TaxRate:       10,
	}
}

func TestPreviewAssignsNumberAndDueDate(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Preview(context.Background(), validInvoice())
	require.NoError(t, err)

	assert.Equal(t, "001/VI/AGS-I/2025", res.Invoice.Number)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), res.Invoice.DueDate)
	assert.Equal(t, 1100.0, res.Invoice.GrandTotal)
	assert.Contains(t, res.HTML, "001/VI/AGS-I/2025")
}

func TestPreviewConsumesSequence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Preview(ctx, validInvoice())
	require.NoError(t, err)

	res, err := svc.Generate(ctx, validInvoice())
	require.NoError(t, err)
	assert.Equal(t, "002/VI/AGS-I/2025", res.Invoice.Number)
}

func TestPreviewKeepsExplicitNumber(t *testing.T) {
	svc := newTestService(t)

	inv := validInvoice()
	inv.Number = "CUSTOM-7"
	res, err := svc.Preview(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-7", res.Invoice.Number)
}

func TestGenerateValidationError(t *testing.T) {
	svc := newTestService(t)

	inv := validInvoice()
	inv.SenderCompany = ""
	_, err := svc.Generate(context.Background(), inv)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPreviewSkipsValidation(t *testing.T) {
	svc := newTestService(t)

	inv := validInvoice()
	inv.SenderCompany = ""
	res, err := svc.Preview(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, res.HTML)
}

func TestPreviewDefaultsInvoiceDateToToday(t *testing.T) {
	svc := newTestService(t)

	inv := validInvoice()
	inv.InvoiceDate = time.Time{}
	res, err := svc.Preview(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), res.Invoice.InvoiceDate)
}

func TestGenerateRecordsHistoryAndPDF(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Generate(ctx, validInvoice())
	require.NoError(t, err)

	assert.NotEmpty(t, res.HistoryID)
	assert.Equal(t, "invoice-001-VI-AGS-I-2025.pdf", res.Filename)
	require.NotEmpty(t, res.PDF)
	assert.Equal(t, "%PDF", string(res.PDF[:4]))
}

func TestExportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	generated, err := svc.Generate(ctx, validInvoice())
	require.NoError(t, err)

	exported, err := svc.Export(ctx, generated.HistoryID)
	require.NoError(t, err)
	assert.Equal(t, generated.Invoice.Number, exported.Invoice.Number)
	assert.Equal(t, generated.Filename, exported.Filename)
	assert.NotEmpty(t, exported.PDF)
}

func TestExportUnknownID(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Export(context.Background(), "inv_missing")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestRenderHTMLFromHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	generated, err := svc.Generate(ctx, validInvoice())
	require.NoError(t, err)

	html, err := svc.RenderHTML(ctx, generated.HistoryID)
	require.NoError(t, err)
	assert.Contains(t, html, generated.Invoice.Number)
}

func TestDefaultCurrencyApplied(t *testing.T) {
	svc := newTestService(t)

	inv := validInvoice()
	inv.Currency = ""
	res, err := svc.Preview(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "IDR", res.Invoice.Currency)
}
