package core

import (
	"context"
	"fmt"

	"fpoconsole/pkg/domain"
)

// NewInventoryLowStockRule warns when a changed item ends the transaction low
// or out of stock. It never blocks.
func NewInventoryLowStockRule() domain.Rule {
	return inventoryLowStockRule{}
}

type inventoryLowStockRule struct{}

func (inventoryLowStockRule) Name() string { return "inventory_low_stock" }

func (r inventoryLowStockRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	seen := make(map[string]struct{})
	for _, change := range changes {
		if change.Entity != domain.EntityInventoryItem {
			continue
		}
		after, ok := change.After.(domain.InventoryItem)
		if !ok {
			continue
		}
		if _, dup := seen[after.ID]; dup {
			continue
		}
		seen[after.ID] = struct{}{}
		item, ok := view.FindInventoryItem(after.ID)
		if !ok {
			continue
		}
		status := item.Status()
		if status == domain.InStock {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s (%s) is %s: %s %s left, threshold %s", item.Name, item.ID, status, item.CurrentStock, item.Unit, item.MinimumThreshold),
			Entity:   domain.EntityInventoryItem,
			EntityID: item.ID,
		})
	}
	return res, nil
}
