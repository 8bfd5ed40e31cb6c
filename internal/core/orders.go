package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// CreateOrder places an input or output order. Status defaults to Pending
// and a zero total is computed from the line items.
func (s *Service) CreateOrder(ctx context.Context, draft domain.OrderDraft) (Order, Result, error) {
	var created Order
	res, err := s.run(ctx, "create_order", domain.EntityOrder, func(tx Transaction) (string, error) {
		draft.FarmerID = strings.TrimSpace(draft.FarmerID)
		draft.Items = slices.Clone(draft.Items)
		for i := range draft.Items {
			draft.Items[i].Name = strings.TrimSpace(draft.Items[i].Name)
		}
		if err := s.validator.Draft(domain.EntityOrder, draft); err != nil {
			return "", err
		}
		order := Order{
			Type:     draft.Type,
			FarmerID: draft.FarmerID,
			Status:   draft.Status,
			Total:    draft.Total,
			PlacedAt: draft.PlacedAt,
			Items:    make([]domain.OrderItem, 0, len(draft.Items)),
		}
		lines := decimal.Zero
		for _, item := range draft.Items {
			order.Items = append(order.Items, domain.OrderItem{Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
			lines = lines.Add(item.Quantity.Mul(item.UnitPrice))
		}
		if order.Total.IsZero() {
			order.Total = lines
		}
		if order.Status == "" {
			order.Status = domain.OrderPending
		}
		if order.PlacedAt.IsZero() {
			order.PlacedAt = s.now()
		}
		var err error
		created, err = tx.CreateOrder(order)
		return created.ID, err
	})
	if err != nil {
		return Order{}, res, err
	}
	return created, res, nil
}

// UpdateOrderStatus advances an order along Pending, Processing, Fulfilled or
// cancels it. Fulfilled and cancelled orders cannot change.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (Order, Result, error) {
	var updated Order
	res, err := s.run(ctx, "update_order_status", domain.EntityOrder, func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateOrder(id, func(o *Order) error {
			if !slices.Contains(domain.OrderStatuses, status) {
				return domain.NewValidationError(domain.EntityOrder, "status", fmt.Sprintf("unknown status %q", status))
			}
			if !o.Status.CanTransition(status) {
				return domain.NewValidationError(domain.EntityOrder, "status", fmt.Sprintf("cannot move from %s to %s", o.Status, status))
			}
			o.Status = status
			return nil
		})
		return id, err
	})
	if err != nil {
		return Order{}, res, err
	}
	return updated, res, nil
}
