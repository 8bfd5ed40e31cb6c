// Package aggregate derives dashboard figures from store snapshots. Every
// function is pure over its inputs and never mutates them.
package aggregate

import (
	"slices"
	"strings"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// DefaultRevenueCategories are the purposes always reported on the revenue
// chart, in display order.
var DefaultRevenueCategories = []string{"Input Sales", "Output Sales", "Membership Fees", "Service Charges"}

// CategoryTotal is the revenue attributed to one payment purpose.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// countsAsRevenue selects completed inbound payments.
func countsAsRevenue(p domain.Payment) bool {
	return p.Direction == domain.Inbound && p.Status == domain.PaymentCompleted
}

// RevenueByCategory sums completed inbound payments by purpose. The given
// categories are always present, zero when unused, and come first in the
// order given; any other purposes follow alphabetically.
func RevenueByCategory(payments []domain.Payment, categories ...string) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if !countsAsRevenue(p) {
			continue
		}
		totals[p.Purpose] = totals[p.Purpose].Add(p.Amount)
	}
	out := make([]CategoryTotal, 0, len(categories)+len(totals))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, CategoryTotal{Category: c, Amount: totals[c]})
	}
	var extra []string
	for purpose := range totals {
		if _, ok := seen[purpose]; !ok {
			extra = append(extra, purpose)
		}
	}
	slices.SortFunc(extra, strings.Compare)
	for _, purpose := range extra {
		out = append(out, CategoryTotal{Category: purpose, Amount: totals[purpose]})
	}
	return out
}

// TotalRevenue sums every completed inbound payment.
func TotalRevenue(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if countsAsRevenue(p) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// NetCashPosition is completed inbound money minus all outbound money.
// Outbound payments count whatever their status.
func NetCashPosition(payments []domain.Payment) decimal.Decimal {
	return CashFlow(payments).Net
}

// CashFlowSummary splits payments by direction and settlement.
type CashFlowSummary struct {
	InboundCompleted decimal.Decimal `json:"inbound_completed"`
	InboundPending   decimal.Decimal `json:"inbound_pending"`
	InboundFailed    decimal.Decimal `json:"inbound_failed"`
	Outbound         decimal.Decimal `json:"outbound"`
	Net              decimal.Decimal `json:"net"`
	PendingCount     int             `json:"pending_count"`
}

// CashFlow summarizes payments in a single pass.
func CashFlow(payments []domain.Payment) CashFlowSummary {
	var s CashFlowSummary
	for _, p := range payments {
		if p.Status == domain.PaymentPending {
			s.PendingCount++
		}
		switch p.Direction {
		case domain.Inbound:
			switch p.Status {
			case domain.PaymentCompleted:
				s.InboundCompleted = s.InboundCompleted.Add(p.Amount)
			case domain.PaymentPending:
				s.InboundPending = s.InboundPending.Add(p.Amount)
			case domain.PaymentFailed:
				s.InboundFailed = s.InboundFailed.Add(p.Amount)
			}
		case domain.Outbound:
			s.Outbound = s.Outbound.Add(p.Amount)
		}
	}
	s.Net = s.InboundCompleted.Sub(s.Outbound)
	return s
}
