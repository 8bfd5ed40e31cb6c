package core

import (
	"context"
	"fmt"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// NewNonNegativeValuesRule blocks any negative amount or quantity in the store.
func NewNonNegativeValuesRule() domain.Rule {
	return nonNegativeValuesRule{}
}

type nonNegativeValuesRule struct{}

func (nonNegativeValuesRule) Name() string { return "non_negative_values" }

func (r nonNegativeValuesRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	check := func(entity domain.EntityType, id, field string, v decimal.Decimal) {
		if !v.IsNegative() {
			return
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("%s %s has negative %s %s", entity, id, field, v),
			Entity:   entity,
			EntityID: id,
		})
	}
	for _, f := range view.ListFarmers() {
		check(domain.EntityFarmer, f.ID, "land_size", f.LandSize)
		check(domain.EntityFarmer, f.ID, "outstanding_dues", f.OutstandingDues)
		check(domain.EntityFarmer, f.ID, "share_capital", f.ShareCapital)
	}
	for _, o := range view.ListOrders() {
		check(domain.EntityOrder, o.ID, "total", o.Total)
		for _, item := range o.Items {
			check(domain.EntityOrder, o.ID, item.Name+" quantity", item.Quantity)
			check(domain.EntityOrder, o.ID, item.Name+" unit_price", item.UnitPrice)
		}
	}
	for _, p := range view.ListPayments() {
		check(domain.EntityPayment, p.ID, "amount", p.Amount)
	}
	for _, item := range view.ListInventory() {
		check(domain.EntityInventoryItem, item.ID, "current_stock", item.CurrentStock)
		check(domain.EntityInventoryItem, item.ID, "minimum_threshold", item.MinimumThreshold)
		check(domain.EntityInventoryItem, item.ID, "average_cost", item.AverageCost)
	}
	return res, nil
}
