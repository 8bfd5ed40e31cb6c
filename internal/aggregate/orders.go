package aggregate

import (
	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// StageCount is the number and value of orders in one pipeline stage.
type StageCount struct {
	Status domain.OrderStatus `json:"status"`
	Orders int                `json:"orders"`
	Value  decimal.Decimal    `json:"value"`
}

// OrderPipeline counts orders per status in pipeline order. Every canonical
// stage is present even when empty.
func OrderPipeline(orders []domain.Order) []StageCount {
	idx := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	out := make([]StageCount, 0, len(domain.OrderStatuses))
	for i, s := range domain.OrderStatuses {
		idx[s] = i
		out = append(out, StageCount{Status: s})
	}
	for _, o := range orders {
		i, ok := idx[o.Status]
		if !ok {
			continue
		}
		out[i].Orders++
		out[i].Value = out[i].Value.Add(o.Total)
	}
	return out
}

// OrdersOfType keeps orders of a single type.
func OrdersOfType(orders []domain.Order, t domain.OrderType) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}
