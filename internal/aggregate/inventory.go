package aggregate

import (
	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// InventoryAlert flags an item that is low or out of stock.
type InventoryAlert struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Status           domain.InventoryStatus `json:"status"`
	CurrentStock     decimal.Decimal        `json:"current_stock"`
	MinimumThreshold decimal.Decimal        `json:"minimum_threshold"`
	Unit             string                 `json:"unit"`
}

// InventoryReport counts items per derived status and lists alerts.
type InventoryReport struct {
	InStock    int              `json:"in_stock"`
	LowStock   int              `json:"low_stock"`
	OutOfStock int              `json:"out_of_stock"`
	TotalValue decimal.Decimal  `json:"total_value"`
	Alerts     []InventoryAlert `json:"alerts"`
}

// InventorySummary derives status for every item at call time.
func InventorySummary(items []domain.InventoryItem) InventoryReport {
	r := InventoryReport{Alerts: []InventoryAlert{}}
	for _, item := range items {
		r.TotalValue = r.TotalValue.Add(item.StockValue())
		status := item.Status()
		switch status {
		case domain.InStock:
			r.InStock++
			continue
		case domain.LowStock:
			r.LowStock++
		case domain.OutOfStock:
			r.OutOfStock++
		}
		r.Alerts = append(r.Alerts, InventoryAlert{
			ID:               item.ID,
			Name:             item.Name,
			Status:           status,
			CurrentStock:     item.CurrentStock,
			MinimumThreshold: item.MinimumThreshold,
			Unit:             item.Unit,
		})
	}
	return r
}
