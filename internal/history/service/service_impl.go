package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/history/domain"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Store kvstore.Store
	Clock clock.Clock
	Log   *zap.Logger
}

// Service stores the whole history collection under a single key, newest
// first. Read-modify-write cycles are serialized by a mutex; HTTP handlers
// may run concurrently, unlike the single-tab original.
type Service struct {
	mu    sync.Mutex
	store kvstore.Store
	clock clock.Clock
	log   *zap.Logger
}

func New(p ServiceParam) domain.Service {
	return &Service{
		store: p.Store,
		clock: p.Clock,
		log:   p.Log.Named("history.service"),
	}
}

func (s *Service) Append(ctx context.Context, inv invoicedomain.Invoice) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	item := domain.Item{
		ID:               newHistoryID(now.UnixMilli()),
		InvoiceNumber:    inv.Number,
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		SenderCompany:    inv.SenderCompany,
		RecipientCompany: inv.RecipientCompany,
		GrandTotal:       inv.GrandTotal,
		Currency:         inv.Currency,
		Status:           domain.StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
		PDFGenerated:     false,
		FullData:         inv,
	}

	items := s.load(ctx)
	items = append([]domain.Item{item}, items...)

	if err := s.persist(ctx, items); err != nil {
		return "", err
	}
	return item.ID, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.load(ctx) {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Status = status
		items[i].UpdatedAt = s.clock.Now()
		if status == domain.StatusSent {
			items[i].PDFGenerated = true
		}
		return s.persist(ctx, items)
	}

	// Unknown id is a silent no-op, matching the legacy behavior.
	return nil
}

func (s *Service) MarkPDFGenerated(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].PDFGenerated = true
		items[i].UpdatedAt = s.clock.Now()
		return s.persist(ctx, items)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	remaining := items[:0]
	for _, item := range items {
		if item.ID != id {
			remaining = append(remaining, item)
		}
	}
	return s.persist(ctx, remaining)
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, kvstore.KeyHistory); err != nil {
		return fmt.Errorf("clear invoice history: %w", err)
	}
	return nil
}

// Search applies the status then date-range predicates. A non-empty search
// term short-circuits both: the match result is returned directly, so a
// search combined with a status filter ignores the status filter. That
// mirrors the legacy filter and is covered by tests; callers wanting both
// must filter client-side.
func (s *Service) Search(ctx context.Context, filter domain.Filter) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	var out []domain.Item
	for _, item := range s.load(ctx) {
		if term != "" {
			if matchesTerm(item, term) {
				out = append(out, item)
			}
			continue
		}
		if filter.Status != "" && filter.Status != domain.StatusAll && item.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && item.InvoiceDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && item.InvoiceDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.Stats{}
	now := s.clock.Now()

	for _, item := range s.load(ctx) {
		stats.Total++
		stats.TotalAmount += item.GrandTotal

		switch item.Status {
		case domain.StatusDraft:
			stats.Draft++
		case domain.StatusSent:
			stats.Sent++
		case domain.StatusPaid:
			stats.Paid++
		case domain.StatusOverdue:
			stats.Overdue++
		}

		// Sent invoices past their due date read as overdue.
		if item.Status == domain.StatusSent && item.DueDate.Before(now) {
			stats.Overdue++
			stats.Sent--
		}
	}
	return stats, nil
}

// load reads the whole collection. Missing or corrupt data reads as empty:
// history is reconstructible, so a broken blob must never block the app.
func (s *Service) load(ctx context.Context) []domain.Item {
	raw, ok, err := s.store.Get(ctx, kvstore.KeyHistory)
	if err != nil {
		s.log.Error("load invoice history", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var items []domain.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Error("decode invoice history", zap.Error(err))
		return nil
	}
	return items
}

func (s *Service) persist(ctx context.Context, items []domain.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode invoice history: %w", err)
	}
	if err := s.store.Set(ctx, kvstore.KeyHistory, raw); err != nil {
		return fmt.Errorf("save invoice history: %w", err)
	}
	return nil
}

func matchesTerm(item domain.Item, term string) bool {
	return strings.Contains(strings.ToLower(item.InvoiceNumber), term) ||
		strings.Contains(strings.ToLower(item.SenderCompany), term) ||
		strings.Contains(strings.ToLower(item.RecipientCompany), term)
}

func newHistoryID(unixMilli int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("inv_%d_%s", unixMilli, suffix)
}
