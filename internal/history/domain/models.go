// Package domain contains the invoice history model: persisted summaries of
// generated invoices plus the full snapshot needed to re-export them.
package domain

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// Status represents history item lifecycle states.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"

	// StatusAll is a filter-only pseudo status.
	StatusAll Status = "all"
)

// Valid reports whether s is a storable status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

// Item is a denormalized summary of a generated invoice. FullData carries the
// complete invoice so it can be reloaded into the form or re-exported.
type Item struct {
	ID               string                `json:"id"`
	InvoiceNumber    string                `json:"invoiceNumber"`
	InvoiceDate      time.Time             `json:"invoiceDate"`
	DueDate          time.Time             `json:"dueDate"`
	SenderCompany    string                `json:"senderCompany"`
	RecipientCompany string                `json:"recipientCompany"`
	GrandTotal       float64               `json:"grandTotal"`
	Currency         string                `json:"currency"`
	Status           Status                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	PDFGenerated     bool                  `json:"pdfGenerated"`
	FullData         invoicedomain.Invoice `json:"fullData"`
}

// Filter selects history items. A non-empty SearchTerm replaces the status
// and date predicates entirely; see Service.Search.
type Filter struct {
	Status     Status
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchTerm string
}

// Stats summarizes the history collection. Overdue counts sent items whose
// due date has passed; that reclassification happens at read time and is
// never written back.
type Stats struct {
	Total       int     `json:"total"`
	Draft       int     `json:"draft"`
	Sent        int     `json:"sent"`
	Paid        int     `json:"paid"`
	Overdue     int     `json:"overdue"`
	TotalAmount float64 `json:"totalAmount"`
}

type Service interface {
	Append(ctx context.Context, inv invoicedomain.Invoice) (string, error)
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkPDFGenerated(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Search(ctx context.Context, filter Filter) ([]Item, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	ErrInvalidStatus = errors.New("invalid_status")
)
