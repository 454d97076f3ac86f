// Package draft persists the in-progress invoice form. Rapid edits are
// coalesced by a debounce timer so each editing burst costs one write.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/smallbiznis/invoicer/internal/config"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service interface {
	// Save schedules a debounced write. A newer Save supersedes a pending
	// one, guaranteeing at most one write per debounce window.
	Save(ctx context.Context, inv invoicedomain.Invoice)
	// SaveNow writes immediately, bypassing the debounce.
	SaveNow(ctx context.Context, inv invoicedomain.Invoice) error
	// Load returns the stored draft, or nil when none exists.
	Load(ctx context.Context) (*invoicedomain.Invoice, error)
	Clear(ctx context.Context) error
	// Flush writes any pending debounced draft immediately.
	Flush(ctx context.Context) error
}

type ServiceParam struct {
	fx.In

	Store  kvstore.Store
	Holder *config.InvoiceConfigHolder
	Log    *zap.Logger
}

type service struct {
	store  kvstore.Store
	holder *config.InvoiceConfigHolder
	log    *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *invoicedomain.Invoice
}

func New(lc fx.Lifecycle, p ServiceParam) Service {
	s := &service{
		store:  p.Store,
		holder: p.Holder,
		log:    p.Log.Named("draft.service"),
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return s.Flush(ctx)
			},
		})
	}

	return s
}

func (s *service) Save(ctx context.Context, inv invoicedomain.Invoice) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = &inv
	if s.timer != nil {
		s.timer.Stop()
	}

	delay := s.holder.Get().DraftDebounce
	s.timer = time.AfterFunc(delay, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.log.Error("autosave draft", zap.Error(err))
		}
	})
}

func (s *service) SaveNow(ctx context.Context, inv invoicedomain.Invoice) error {
	raw, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.store.Set(ctx, kvstore.KeyDraft, raw); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *service) Load(ctx context.Context) (*invoicedomain.Invoice, error) {
	raw, ok, err := s.store.Get(ctx, kvstore.KeyDraft)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var inv invoicedomain.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		// A corrupt draft reads as absent; the form just starts fresh.
		s.log.Warn("decode draft", zap.Error(err))
		return nil, nil
	}
	return &inv, nil
}

func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, kvstore.KeyDraft); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func (s *service) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending == nil {
		return nil
	}
	return s.SaveNow(ctx, *pending)
}

var Module = fx.Module("draft.service",
	fx.Provide(New),
)
