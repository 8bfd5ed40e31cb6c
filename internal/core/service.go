// Package core exposes the transactional operations of the FPO console on
// top of a domain store, together with the dashboards derived from it.
package core

import (
	"context"
	"time"

	"fpoconsole/internal/infra/persistence/memory"
	"fpoconsole/internal/validation"
	"fpoconsole/pkg/domain"
)

// Service validates drafts and applies every mutation within one store transaction.
type Service struct {
	store     domain.Store
	validator *validation.Validator
	opts      serviceOptions
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.Store, opts ...Option) *Service {
	options := defaultServiceOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{
		store:     store,
		validator: validation.New(),
		opts:      options,
	}
}

// NewInMemoryService creates a service over a fresh memory store. A nil
// engine installs the default rules.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	options := defaultServiceOptions()
	for _, opt := range opts {
		opt(&options)
	}
	store := memory.NewStore(engine, memory.WithClock(options.clock.Now))
	return &Service{
		store:     store,
		validator: validation.New(),
		opts:      options,
	}
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.Store {
	return s.store
}

func (s *Service) now() time.Time {
	return s.opts.clock.Now()
}

// run executes fn in a transaction and reports the outcome to the logger,
// metrics and audit recorders. fn returns the identifier of the record it touched.
func (s *Service) run(ctx context.Context, op string, entity domain.EntityType, fn func(tx Transaction) (string, error)) (Result, error) {
	started := s.now()
	var id string
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		id, err = fn(tx)
		return err
	})
	elapsed := s.now().Sub(started)
	s.opts.metrics.Observe(ctx, op, err == nil, elapsed)

	warnings := res.Warnings()
	for _, w := range warnings {
		s.opts.logger.Warn("rule warning", "operation", op, "rule", w.Rule, "entity_id", w.EntityID, "message", w.Message)
	}
	entry := AuditEntry{
		Operation:  op,
		Entity:     entity,
		EntityID:   id,
		Status:     AuditStatusSuccess,
		Warnings:   warnings,
		RecordedAt: s.now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.opts.logger.Info("operation rejected", "operation", op, "entity", entity, "entity_id", id, "error", err)
	} else {
		s.opts.logger.Debug("operation committed", "operation", op, "entity", entity, "entity_id", id, "duration", elapsed)
	}
	s.opts.audit.Record(ctx, entry)
	return res, err
}
