package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/invoicetemplate/domain"
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
		log:   p.Log.Named("invoicetemplate.service"),
	}
}

func (s *Service) Save(ctx context.Context, tpl domain.Template) (string, error) {
	if strings.TrimSpace(tpl.Name) == "" {
		return "", domain.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	tpl.ID = fmt.Sprintf("tpl_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	tpl.CreatedAt = now

	templates := s.load(ctx)
	templates = append([]domain.Template{tpl}, templates...)

	if err := s.persist(ctx, templates); err != nil {
		return "", err
	}
	return tpl.ID, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tpl := range s.load(ctx) {
		if tpl.ID == id {
			found := tpl
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.load(ctx)
	remaining := templates[:0]
	for _, tpl := range templates {
		if tpl.ID != id {
			remaining = append(remaining, tpl)
		}
	}
	return s.persist(ctx, remaining)
}

func (s *Service) load(ctx context.Context) []domain.Template {
	raw, ok, err := s.store.Get(ctx, kvstore.KeyTemplates)
	if err != nil {
		s.log.Error("load invoice templates", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var templates []domain.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		s.log.Error("decode invoice templates", zap.Error(err))
		return nil
	}
	return templates
}

func (s *Service) persist(ctx context.Context, templates []domain.Template) error {
	raw, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("encode invoice templates: %w", err)
	}
	if err := s.store.Set(ctx, kvstore.KeyTemplates, raw); err != nil {
		return fmt.Errorf("save invoice templates: %w", err)
	}
	return nil
}
