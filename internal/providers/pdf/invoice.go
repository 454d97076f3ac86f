package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	invoiceformat "github.com/smallbiznis/invoicer/internal/invoice/format"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, inv invoicedomain.Invoice) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, inv.SenderCompany, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Right,
			Top:   3,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+inv.Number, props.Text{Top: 0}),
			text.New("Invoice date: "+invoiceformat.Date(inv.InvoiceDate), props.Text{Top: 5}),
			text.New("Due date: "+invoiceformat.Date(inv.DueDate), props.Text{Top: 10}),
		),
		col.New(6),
	)

	m.AddRow(32,
		col.New(6).Add(addressLines("From", inv.SenderCompany, inv.SenderAddress)...),
		col.New(6).Add(addressLines("Bill to", inv.RecipientCompany, inv.RecipientAddress)...),
	)

	// Table header
	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range inv.Items {
		m.AddRow(10,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, invoiceformat.Currency(item.Price, inv.Currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, invoiceformat.Currency(item.Total, inv.Currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, invoiceformat.Currency(inv.Subtotal, inv.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, taxRowLabel(inv), props.Text{Size: 9}),
		text.NewCol(2, invoiceformat.Currency(inv.TaxAmount, inv.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, invoiceformat.Currency(inv.GrandTotal, inv.Currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(26,
		col.New(6).Add(
			text.New("Payment details", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(inv.AccountName, props.Text{Size: 9, Top: 5}),
			text.New(inv.AccountNumber, props.Text{Size: 9, Top: 10}),
			text.New(inv.BankName, props.Text{Size: 9, Top: 15}),
		),
		col.New(6),
	)

	if strings.TrimSpace(inv.Notes) != "" {
		m.AddRow(20,
			text.NewCol(12, inv.Notes, props.Text{Size: 8, Top: 2}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func addressLines(label, company, address string) []core.Component {
	parts := []core.Component{
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9}),
		text.New(company, props.Text{Size: 9, Top: 5}),
	}
	top := 10.0
	for _, line := range strings.Split(strings.ReplaceAll(address, "\r\n", "\n"), "\n") {
		parts = append(parts, text.New(line, props.Text{Size: 9, Top: top}))
		top += 5
	}
	return parts
}

func taxRowLabel(inv invoicedomain.Invoice) string {
	if inv.TaxMode == invoicedomain.TaxModePercentage {
		return "Tax (" + strconv.FormatFloat(inv.TaxRate, 'f', -1, 64) + "%)"
	}
	return "Tax"
}
