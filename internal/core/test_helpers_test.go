package core

import (
	"context"
	"testing"
	"time"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

func (c *captureLogger) has(call string) bool {
	for _, got := range c.calls {
		if got == call {
			return true
		}
	}
	return false
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct{ calls []metricsCall }

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

type captureAuditRecorder struct{ entries []AuditEntry }

func (c *captureAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	c.entries = append(c.entries, entry)
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(stubClock{t: fixedNow})}, opts...)
	return NewInMemoryService(nil, opts...)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func mustAddFarmer(t *testing.T, svc *Service, name string) Farmer {
	t.Helper()
	f, _, err := svc.AddFarmer(context.Background(), domain.FarmerDraft{Name: name, Phone: "98765" + name})
	if err != nil {
		t.Fatalf("add farmer %s: %v", name, err)
	}
	return f
}

func time0() time.Time { return time.Time{} }
