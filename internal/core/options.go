package core

import (
	"context"
	"time"

	"fpoconsole/internal/aggregate"
	"fpoconsole/internal/query"
	"fpoconsole/pkg/domain"
)

// Clock supplies the current time for default dates.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Logger receives structured service events as key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MetricsRecorder observes the outcome and latency of each service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// AuditStatus is the outcome recorded for an operation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry captures one service operation for activity feeds.
type AuditEntry struct {
	Operation  string
	Entity     domain.EntityType
	EntityID   string
	Status     AuditStatus
	Error      string
	Warnings   []Violation
	RecordedAt time.Time
}

// AuditRecorder accepts audit entries after every operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

type serviceOptions struct {
	clock     Clock
	logger    Logger
	metrics   MetricsRecorder
	audit     AuditRecorder
	aggregate aggregate.Options
	pageSize  int
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:     ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:    noopLogger{},
		metrics:   noopMetricsRecorder{},
		audit:     noopAuditRecorder{},
		aggregate: aggregate.DefaultOptions(),
		pageSize:  query.DefaultPageSize,
	}
}

// Option customizes a Service.
type Option func(*serviceOptions)

// WithClock overrides the clock used for default dates and durations.
func WithClock(clock Clock) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger routes service events to logger.
func WithLogger(logger Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder routes operation timings to recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithAuditRecorder routes audit entries to recorder.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.audit = recorder
		}
	}
}

// WithAggregateOptions sets the crops and revenue categories reported by dashboards.
func WithAggregateOptions(opts aggregate.Options) Option {
	return func(o *serviceOptions) {
		o.aggregate = opts
	}
}

// WithPageSize sets the page size used when a directory request carries none.
func WithPageSize(size int) Option {
	return func(o *serviceOptions) {
		if size > 0 {
			o.pageSize = size
		}
	}
}
