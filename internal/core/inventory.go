package core

import (
	"context"
	"strings"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// AddInventoryItem stocks a new good. Its status is derived from stock and
// threshold and cannot be supplied.
func (s *Service) AddInventoryItem(ctx context.Context, draft domain.InventoryDraft) (InventoryItem, Result, error) {
	var created InventoryItem
	res, err := s.run(ctx, "add_inventory_item", domain.EntityInventoryItem, func(tx Transaction) (string, error) {
		draft.Name = strings.TrimSpace(draft.Name)
		draft.Unit = strings.TrimSpace(draft.Unit)
		if err := s.validator.Draft(domain.EntityInventoryItem, draft); err != nil {
			return "", err
		}
		var err error
		created, err = tx.CreateInventoryItem(InventoryItem{
			Name:             draft.Name,
			Unit:             draft.Unit,
			CurrentStock:     draft.CurrentStock,
			MinimumThreshold: draft.MinimumThreshold,
			AverageCost:      draft.AverageCost,
		})
		return created.ID, err
	})
	if err != nil {
		return InventoryItem{}, res, err
	}
	return created, res, nil
}

// AdjustInventory adds delta to current stock; negative deltas issue stock.
// Stock never drops below zero.
func (s *Service) AdjustInventory(ctx context.Context, id string, delta decimal.Decimal) (InventoryItem, Result, error) {
	return s.updateInventory(ctx, "adjust_inventory", id, func(item *InventoryItem) error {
		next := item.CurrentStock.Add(delta)
		if next.IsNegative() {
			return domain.NewValidationError(domain.EntityInventoryItem, "current_stock", "only "+item.CurrentStock.String()+" "+item.Unit+" in stock")
		}
		item.CurrentStock = next
		return nil
	})
}

// ReceiveInventory adds quantity bought at unitCost and moves the average
// cost to the weighted mean of old and new stock.
func (s *Service) ReceiveInventory(ctx context.Context, id string, quantity, unitCost decimal.Decimal) (InventoryItem, Result, error) {
	return s.updateInventory(ctx, "receive_inventory", id, func(item *InventoryItem) error {
		if !quantity.IsPositive() {
			return domain.NewValidationError(domain.EntityInventoryItem, "current_stock", "received quantity must be positive")
		}
		if unitCost.IsNegative() {
			return domain.NewValidationError(domain.EntityInventoryItem, "average_cost", "must not be less than 0")
		}
		stock := decimal.Max(item.CurrentStock, decimal.Zero)
		total := stock.Add(quantity)
		value := stock.Mul(item.AverageCost).Add(quantity.Mul(unitCost))
		item.AverageCost = value.DivRound(total, 4)
		item.CurrentStock = total
		return nil
	})
}

// SetInventoryThreshold changes the level at which the item reports Low Stock.
func (s *Service) SetInventoryThreshold(ctx context.Context, id string, threshold decimal.Decimal) (InventoryItem, Result, error) {
	return s.updateInventory(ctx, "set_inventory_threshold", id, func(item *InventoryItem) error {
		if threshold.IsNegative() {
			return domain.NewValidationError(domain.EntityInventoryItem, "minimum_threshold", "must not be less than 0")
		}
		item.MinimumThreshold = threshold
		return nil
	})
}

func (s *Service) updateInventory(ctx context.Context, op, id string, mutator func(*InventoryItem) error) (InventoryItem, Result, error) {
	var updated InventoryItem
	res, err := s.run(ctx, op, domain.EntityInventoryItem, func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateInventoryItem(id, mutator)
		return id, err
	})
	if err != nil {
		return InventoryItem{}, res, err
	}
	return updated, res, nil
}
