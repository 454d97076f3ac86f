package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/config"
	historydomain "github.com/smallbiznis/invoicer/internal/history/domain"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/invoice/render"
	"github.com/smallbiznis/invoicer/internal/numbering"
	"github.com/smallbiznis/invoicer/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Renderer render.Renderer
	PDF      pdf.Provider
	Sequence numbering.Sequence
	History  historydomain.Service
	Holder   *config.InvoiceConfigHolder
	Clock    clock.Clock
	Log      *zap.Logger
}

type Service struct {
	renderer render.Renderer
	pdf      pdf.Provider
	sequence numbering.Sequence
	history  historydomain.Service
	holder   *config.InvoiceConfigHolder
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		renderer: p.Renderer,
		pdf:      p.PDF,
		sequence: p.Sequence,
		history:  p.History,
		holder:   p.Holder,
		clock:    p.Clock,
		log:      p.Log.Named("invoice.service"),
	}
}

// prepare fills derived defaults and recomputes totals. An invoice without a
// number consumes the next one from the sequence, even on preview.
func (s *Service) prepare(ctx context.Context, inv domain.Invoice) (domain.Invoice, error) {
	cfg := s.holder.Get()

	if inv.Currency == "" {
		inv.Currency = cfg.DefaultCurrency
	}
	if inv.TaxMode == "" {
		inv.TaxMode = domain.TaxModePercentage
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = s.clock.Now()
	}

	if inv.Number == "" {
		number, err := s.sequence.Next(ctx, inv.InvoiceDate)
		if err != nil {
			return domain.Invoice{}, err
		}
		inv.Number = number
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = inv.InvoiceDate.AddDate(0, 0, cfg.DueOffsetDays)
	}

	inv.Normalize()
	return inv, nil
}

func (s *Service) Preview(ctx context.Context, inv domain.Invoice) (domain.PreviewResult, error) {
	prepared, err := s.prepare(ctx, inv)
	if err != nil {
		return domain.PreviewResult{}, err
	}

	html, err := s.renderer.RenderHTML(prepared)
	if err != nil {
		return domain.PreviewResult{}, fmt.Errorf("render invoice: %w", err)
	}
	return domain.PreviewResult{Invoice: prepared, HTML: html}, nil
}

func (s *Service) Generate(ctx context.Context, inv domain.Invoice) (domain.GenerateResult, error) {
	prepared, err := s.prepare(ctx, inv)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	// Validation gates generation only; an in-progress form can still preview.
	if err := domain.Validate(prepared); err != nil {
		return domain.GenerateResult{}, err
	}

	historyID, err := s.history.Append(ctx, prepared)
	if err != nil {
		return domain.GenerateResult{}, fmt.Errorf("record invoice: %w", err)
	}

	pdfBytes, err := s.renderPDF(ctx, prepared)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	if err := s.history.MarkPDFGenerated(ctx, historyID); err != nil {
		s.log.Warn("mark pdf generated", zap.String("history_id", historyID), zap.Error(err))
	}

	s.log.Info("invoice generated",
		zap.String("history_id", historyID),
		zap.String("number", prepared.Number),
		zap.Float64("grand_total", prepared.GrandTotal),
		zap.String("currency", prepared.Currency),
	)

	return domain.GenerateResult{
		HistoryID: historyID,
		Invoice:   prepared,
		PDF:       pdfBytes,
		Filename:  pdfFilename(prepared.Number),
	}, nil
}

func (s *Service) Export(ctx context.Context, historyID string) (domain.GenerateResult, error) {
	item, err := s.history.GetByID(ctx, historyID)
	if err != nil {
		return domain.GenerateResult{}, err
	}
	if item == nil {
		return domain.GenerateResult{}, domain.ErrInvoiceNotFound
	}

	inv := item.FullData
	inv.Normalize()

	pdfBytes, err := s.renderPDF(ctx, inv)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	if err := s.history.MarkPDFGenerated(ctx, historyID); err != nil {
		s.log.Warn("mark pdf generated", zap.String("history_id", historyID), zap.Error(err))
	}

	return domain.GenerateResult{
		HistoryID: historyID,
		Invoice:   inv,
		PDF:       pdfBytes,
		Filename:  pdfFilename(inv.Number),
	}, nil
}

func (s *Service) RenderHTML(ctx context.Context, historyID string) (string, error) {
	item, err := s.history.GetByID(ctx, historyID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrInvoiceNotFound
	}

	inv := item.FullData
	inv.Normalize()
	return s.renderer.RenderHTML(inv)
}

func (s *Service) renderPDF(ctx context.Context, inv domain.Invoice) ([]byte, error) {
	reader, err := s.pdf.GenerateInvoice(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return raw, nil
}

// pdfFilename derives a download filename from the invoice number. Path
// separators in the number would break Content-Disposition handling.
func pdfFilename(number string) string {
	return "invoice-" + strings.ReplaceAll(number, "/", "-") + ".pdf"
}
