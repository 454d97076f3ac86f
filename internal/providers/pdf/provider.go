package pdf

import (
	"context"
	"io"

	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// Provider renders an invoice into a downloadable PDF document.
type Provider interface {
	GenerateInvoice(ctx context.Context, inv invoicedomain.Invoice) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(ctx context.Context, inv invoicedomain.Invoice) (io.Reader, error) {
	return nil, nil
}
