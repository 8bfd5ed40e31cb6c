package aggregate

import (
	"testing"

	"fpoconsole/pkg/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func payment(dir domain.PaymentDirection, status domain.PaymentStatus, purpose string, amount int64) domain.Payment {
	return domain.Payment{Direction: dir, Status: status, Purpose: purpose, Amount: decimal.NewFromInt(amount)}
}

func TestNetCashPositionExcludesPendingInbound(t *testing.T) {
	payments := []domain.Payment{
		payment(domain.Inbound, domain.PaymentCompleted, "Input Sales", 1000),
		payment(domain.Inbound, domain.PaymentPending, "Input Sales", 500),
		payment(domain.Outbound, domain.PaymentCompleted, "Crop Procurement", 300),
	}
	if got := NetCashPosition(payments); !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected 700, got %s", got)
	}
}

func TestNetCashPositionCountsOutboundAnyStatus(t *testing.T) {
	payments := []domain.Payment{
		payment(domain.Outbound, domain.PaymentPending, "Salaries", 200),
		payment(domain.Outbound, domain.PaymentFailed, "Transport", 50),
	}
	if got := NetCashPosition(payments); !got.Equal(decimal.NewFromInt(-250)) {
		t.Fatalf("expected -250, got %s", got)
	}
}

func TestRevenueByCategoryEmptyIsZero(t *testing.T) {
	got := RevenueByCategory(nil, DefaultRevenueCategories...)
	if len(got) != len(DefaultRevenueCategories) {
		t.Fatalf("expected every category, got %d", len(got))
	}
	for _, c := range got {
		if !c.Amount.IsZero() {
			t.Fatalf("expected zero for %s, got %s", c.Category, c.Amount)
		}
	}
}

func TestRevenueByCategoryGroupsCompletedInbound(t *testing.T) {
	payments := []domain.Payment{
		payment(domain.Inbound, domain.PaymentCompleted, "Input Sales", 100),
		payment(domain.Inbound, domain.PaymentCompleted, "Input Sales", 50),
		payment(domain.Inbound, domain.PaymentFailed, "Input Sales", 999),
		payment(domain.Outbound, domain.PaymentCompleted, "Input Sales", 999),
		payment(domain.Inbound, domain.PaymentCompleted, "Warehouse Rent", 20),
		payment(domain.Inbound, domain.PaymentCompleted, "Audit Fees", 10),
	}
	got := RevenueByCategory(payments, "Input Sales", "Membership Fees")
	want := []string{"Input Sales", "Membership Fees", "Audit Fees", "Warehouse Rent"}
	var names []string
	for _, c := range got {
		names = append(names, c.Category)
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}
	if !got[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150 input sales, got %s", got[0].Amount)
	}
	if !got[1].Amount.IsZero() {
		t.Fatalf("expected zero membership fees, got %s", got[1].Amount)
	}
	if total := TotalRevenue(payments); !total.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected total 180, got %s", total)
	}
}

func TestCashFlowSplitsStatuses(t *testing.T) {
	flow := CashFlow([]domain.Payment{
		payment(domain.Inbound, domain.PaymentCompleted, "a", 10),
		payment(domain.Inbound, domain.PaymentPending, "a", 5),
		payment(domain.Inbound, domain.PaymentFailed, "a", 3),
		payment(domain.Outbound, domain.PaymentPending, "b", 4),
	})
	if !flow.InboundCompleted.Equal(decimal.NewFromInt(10)) || !flow.InboundPending.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected inbound split %+v", flow)
	}
	if !flow.InboundFailed.Equal(decimal.NewFromInt(3)) || !flow.Outbound.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("unexpected failed/outbound %+v", flow)
	}
	if !flow.Net.Equal(decimal.NewFromInt(6)) || flow.PendingCount != 2 {
		t.Fatalf("unexpected net/pending %+v", flow)
	}
}
