package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fpoconsole/internal/blob"
	"fpoconsole/internal/config"
	"fpoconsole/internal/core"
	"fpoconsole/internal/infra/persistence/postgres"
	"fpoconsole/internal/infra/persistence/sqlite"
	"fpoconsole/internal/logging"
	"fpoconsole/internal/seed"
	"fpoconsole/pkg/domain"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serviceName = "fpoctl"

// env holds the process boundaries a command run touches.
type env struct {
	out      io.Writer
	logOut   io.Writer
	loader   config.Loader
	openBlob func(ctx context.Context, cfg blob.Config) (blob.Store, error)
}

func defaultEnv() env {
	return env{out: os.Stdout, logOut: os.Stderr, openBlob: blob.Open}
}

// app is the state shared by subcommands for one invocation.
type app struct {
	env
	cfg      config.Config
	logger   *zap.Logger
	blobs    blob.Store
	registry *prometheus.Registry
	svc      *core.Service
	closer   func(context.Context) error
	saveKey  string
	reseed   bool
}

func (a *app) init(ctx context.Context) error {
	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if _, ok := cfg.Blob(); a.saveKey != "" && !ok {
		return errors.New("--save needs a blob seed driver")
	}
	a.logger = logging.NewWithWriter(a.logOut, cfg.Log.Level, logging.Format(cfg.Log.Format), serviceName).
		With(zap.String("run_id", uuid.NewString()))

	opts := []core.Option{
		core.WithLogger(logging.NewAdapter(a.logger)),
		core.WithAuditRecorder(auditLog{logger: a.logger}),
		core.WithAggregateOptions(cfg.Aggregate()),
		core.WithPageSize(cfg.PageSize),
	}
	if cfg.Metrics {
		a.registry = prometheus.NewRegistry()
		recorder, err := core.NewPrometheusMetricsRecorder(a.registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, core.WithMetricsRecorder(recorder))
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.svc = core.NewInMemoryService(nil, opts...)
	} else {
		a.svc = core.NewService(store, opts...)
	}
	if store != nil && !store.Empty() && !a.reseed {
		return nil
	}
	if err := a.seedStore(ctx); err != nil {
		if a.closer != nil {
			_ = a.closer(ctx)
			a.closer = nil
		}
		return err
	}
	return nil
}

func (a *app) seedStore(ctx context.Context) error {
	snap, err := a.loadDataset(ctx)
	if err != nil {
		return err
	}
	return a.svc.Seed(ctx, snap)
}

// durableStore is a store that keeps state between runs.
type durableStore interface {
	domain.Store
	Empty() bool
	Close(ctx context.Context) error
}

// openStore returns nil when state only lives for this run.
func (a *app) openStore(ctx context.Context) (durableStore, error) {
	var (
		store durableStore
		err   error
	)
	switch a.cfg.Store.Driver {
	case config.StoreSQLite:
		store, err = sqlite.NewStore(ctx, a.cfg.Store.SQLitePath, core.NewDefaultRulesEngine())
	case config.StorePostgres:
		store, err = postgres.NewStore(ctx, a.cfg.Store.PostgresDSN, core.NewDefaultRulesEngine())
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Store.Driver, err)
	}
	a.closer = store.Close
	a.logger.Debug("state store opened", zap.String("driver", a.cfg.Store.Driver))
	return store, nil
}

func (a *app) loadDataset(ctx context.Context) (domain.Snapshot, error) {
	if _, ok := a.cfg.Blob(); !ok {
		return seed.Default()
	}
	store, err := a.blobStore(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := seed.Load(ctx, store, a.cfg.Seed.Key)
	if err != nil {
		return domain.Snapshot{}, err
	}
	a.logger.Debug("dataset loaded", zap.String("driver", string(store.Driver())), zap.String("key", a.cfg.Seed.Key))
	return snap, nil
}

// blobStore opens the configured blob store on first use.
func (a *app) blobStore(ctx context.Context) (blob.Store, error) {
	if a.blobs != nil {
		return a.blobs, nil
	}
	bc, _ := a.cfg.Blob()
	store, err := a.openBlob(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	a.blobs = store
	return store, nil
}

// finish saves the dataset when requested, reports collected metrics and
// closes the state store.
func (a *app) finish(ctx context.Context) error {
	if a.svc == nil {
		return nil
	}
	defer func() { _ = a.logger.Sync() }()
	err := a.flush(ctx)
	if a.closer != nil {
		if cerr := a.closer(ctx); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
		}
	}
	return err
}

func (a *app) flush(ctx context.Context) error {
	if a.registry != nil {
		families, err := a.registry.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		for _, mf := range families {
			a.logger.Debug("metric family", zap.String("name", mf.GetName()), zap.Int("series", len(mf.GetMetric())))
		}
	}
	if a.saveKey == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := seed.Encode(&buf, a.svc.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	store, err := a.blobStore(ctx)
	if err != nil {
		return err
	}
	info, err := store.Put(ctx, a.saveKey, &buf, blob.PutOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	a.logger.Info("snapshot saved", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type warning struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type mutationOutput[T any] struct {
	Record   T         `json:"record"`
	Warnings []warning `json:"warnings"`
}

func printMutation[T any](a *app, record T, res core.Result) error {
	out := mutationOutput[T]{Record: record, Warnings: []warning{}}
	for _, v := range res.Warnings() {
		out.Warnings = append(out.Warnings, warning{Rule: v.Rule, Message: v.Message})
	}
	return a.print(out)
}

// auditLog writes audit entries to the process log.
type auditLog struct {
	logger *zap.Logger
}

func (l auditLog) Record(_ context.Context, e core.AuditEntry) {
	l.logger.Info("audit",
		zap.String("operation", e.Operation),
		zap.String("entity", string(e.Entity)),
		zap.String("entity_id", e.EntityID),
		zap.String("status", string(e.Status)),
		zap.String("error", e.Error),
		zap.Int("warnings", len(e.Warnings)),
		zap.Time("recorded_at", e.RecordedAt),
	)
}
