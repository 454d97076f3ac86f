package domain

import (
	"context"
	"errors"
)

// PreviewResult is a normalized invoice with its rendered HTML. Nothing is
// persisted on preview except the consumed invoice number.
type PreviewResult struct {
	Invoice Invoice `json:"invoice"`
	HTML    string  `json:"html"`
}

// GenerateResult is a generated invoice together with its history record id
// and exported PDF document.
type GenerateResult struct {
	HistoryID string
	Invoice   Invoice
	PDF       []byte
	Filename  string
}

type Service interface {
	Preview(ctx context.Context, inv Invoice) (PreviewResult, error)
	Generate(ctx context.Context, inv Invoice) (GenerateResult, error)
	// Export re-renders the PDF for a previously generated invoice.
	Export(ctx context.Context, historyID string) (GenerateResult, error)
	RenderHTML(ctx context.Context, historyID string) (string, error)
}

var (
	ErrInvoiceNotFound = errors.New("invoice_not_found")
)
