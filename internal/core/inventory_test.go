package core

import (
	"context"
	"errors"
	"testing"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

func TestInventoryLifecycle(t *testing.T) {
	ctx := context.Background()
	log := &captureLogger{}
	svc := newTestService(t, WithLogger(log))
	item, res, err := svc.AddInventoryItem(ctx, domain.InventoryDraft{
		Name: "Urea", Unit: "bags", CurrentStock: dec(50), MinimumThreshold: dec(10), AverageCost: dec(260),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.ID != "INV-001" || item.Status() != domain.InStock || len(res.Violations) != 0 {
		t.Fatalf("unexpected item %+v %+v", item, res)
	}

	item, res, err = svc.AdjustInventory(ctx, item.ID, dec(-45))
	if err != nil {
		t.Fatalf("issue stock: %v", err)
	}
	if item.Status() != domain.LowStock || len(res.Warnings()) != 1 {
		t.Fatalf("expected low stock warning, got %s %+v", item.Status(), res)
	}
	if !log.has("w:rule warning") {
		t.Fatalf("expected warning logged, got %v", log.calls)
	}

	if _, _, err := svc.AdjustInventory(ctx, item.ID, dec(-6)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected underflow rejected, got %v", err)
	}
	item, _, err = svc.AdjustInventory(ctx, item.ID, dec(-5))
	if err != nil || item.Status() != domain.OutOfStock {
		t.Fatalf("expected out of stock, got %s %v", item.Status(), err)
	}

	item, _, err = svc.SetInventoryThreshold(ctx, item.ID, dec(0))
	if err != nil || item.Status() != domain.OutOfStock {
		t.Fatalf("zero stock stays out of stock: %s %v", item.Status(), err)
	}
	if _, _, err := svc.SetInventoryThreshold(ctx, item.ID, dec(-1)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected negative threshold rejected, got %v", err)
	}
}

func TestReceiveInventoryAveragesCost(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	item, _, err := svc.AddInventoryItem(ctx, domain.InventoryDraft{Name: "DAP", Unit: "bags", CurrentStock: dec(10), AverageCost: dec(100)})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	item, _, err = svc.ReceiveInventory(ctx, item.ID, dec(30), dec(140))
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !item.CurrentStock.Equal(dec(40)) || !item.AverageCost.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected 40 @ 130, got %s @ %s", item.CurrentStock, item.AverageCost)
	}
	if _, _, err := svc.ReceiveInventory(ctx, item.ID, dec(0), dec(1)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected zero receipt rejected, got %v", err)
	}
	if _, _, err := svc.AdjustInventory(ctx, "INV-404", dec(1)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordPaymentAndSettle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	p, _, err := svc.RecordPayment(ctx, domain.PaymentDraft{
		Direction: domain.Inbound, Purpose: " Input Sales ", Amount: dec(1000), Status: domain.PaymentPending,
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if p.ID != "PAY-00001" || p.Purpose != "Input Sales" || !p.RecordedAt.Equal(fixedNow) {
		t.Fatalf("unexpected payment %+v", p)
	}
	if svc.Overview().CashFlow.Net.Sign() != 0 {
		t.Fatalf("pending inbound must not count")
	}
	if p, _, err = svc.SetPaymentStatus(ctx, p.ID, domain.PaymentCompleted); err != nil || p.Status != domain.PaymentCompleted {
		t.Fatalf("settle: %v", err)
	}
	if !svc.Overview().CashFlow.Net.Equal(dec(1000)) {
		t.Fatalf("expected net 1000 after settlement")
	}
	if _, _, err := svc.SetPaymentStatus(ctx, p.ID, domain.PaymentFailed); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected completed payment to be final, got %v", err)
	}
	if _, _, err := svc.RecordPayment(ctx, domain.PaymentDraft{Direction: "Sideways", Purpose: "x", Status: domain.PaymentCompleted}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected bad direction rejected, got %v", err)
	}
}
