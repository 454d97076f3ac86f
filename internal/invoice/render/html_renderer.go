package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"

	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	invoiceformat "github.com/smallbiznis/invoicer/internal/invoice/format"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .header-left h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
    }
    .header-right {
      text-align: right;
      font-weight: 600;
      color: #8792a2;
      font-size: 16px;
    }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value {
      font-size: 14px;
      line-height: 1.5;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 16px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .totals {
      width: 100%;
      display: flex;
      flex-direction: column;
      align-items: flex-end;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 6px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-value { text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
    }
    .footer {
      margin-top: 60px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid #e3e8ee;
      padding-top: 20px;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div class="header-left">
        <h1>Invoice</h1>
        <div class="label" style="margin-top: 12px;">Invoice number</div>
        <div class="value">{{.Number}}</div>
      </div>
      <div class="header-right">{{.SenderCompany}}</div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">From</div>
        <div class="value">
          <strong>{{.SenderCompany}}</strong><br>
          {{range lines .SenderAddress}}{{.}}<br>{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.RecipientCompany}}</strong><br>
          {{range lines .RecipientAddress}}{{.}}<br>{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">Invoice date</div>
        <div class="value">{{formatDate .InvoiceDate}}</div>

        <div class="label" style="margin-top: 16px;">Due date</div>
        <div class="value">{{formatDate .DueDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Unit Price</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{formatCurrency .Price $.Currency}}</td>
          <td class="td-right" style="font-weight: 500;">{{formatCurrency .Total $.Currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Subtotal</span>
        <span class="total-value">{{formatCurrency .Subtotal .Currency}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">{{taxLabel .TaxMode .TaxRate}}</span>
        <span class="total-value">{{formatCurrency .TaxAmount .Currency}}</span>
      </div>
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Total</span>
        <span class="total-value">{{formatCurrency .GrandTotal .Currency}}</span>
      </div>
    </div>

    <div class="meta-grid" style="margin-top: 40px;">
      <div class="col">
        <div class="label">Payment details</div>
        <div class="value">
          {{.AccountName}}<br>
          {{.AccountNumber}}<br>
          {{.BankName}}
        </div>
      </div>
    </div>

    {{if .Notes}}
    <div class="footer">
      {{range lines .Notes}}{{.}}<br>{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

// Renderer produces a print-ready HTML document for an invoice.
type Renderer interface {
	RenderHTML(inv invoicedomain.Invoice) (string, error)
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatCurrency": formatCurrency,
		"formatDate":     formatDate,
		"taxLabel":       taxLabel,
		"lines":          lines,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(inv invoicedomain.Invoice) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, inv); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatCurrency(amount float64, currency string) string {
	return invoiceformat.Currency(amount, currency)
}

func formatDate(value time.Time) string {
	return invoiceformat.Date(value)
}

func taxLabel(mode invoicedomain.TaxMode, rate float64) string {
	if mode == invoicedomain.TaxModePercentage {
		return "Tax (" + strconv.FormatFloat(rate, 'f', -1, 64) + "%)"
	}
	return "Tax"
}

func lines(value string) []string {
	return strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
}
