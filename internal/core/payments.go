package core

import (
	"context"
	"strings"

	"fpoconsole/pkg/domain"
)

// RecordPayment appends a categorized money movement. Recorded time defaults to now.
func (s *Service) RecordPayment(ctx context.Context, draft domain.PaymentDraft) (Payment, Result, error) {
	var created Payment
	res, err := s.run(ctx, "record_payment", domain.EntityPayment, func(tx Transaction) (string, error) {
		draft.Purpose = strings.TrimSpace(draft.Purpose)
		draft.Party = strings.TrimSpace(draft.Party)
		if err := s.validator.Draft(domain.EntityPayment, draft); err != nil {
			return "", err
		}
		payment := Payment{
			Direction:  draft.Direction,
			Purpose:    draft.Purpose,
			Amount:     draft.Amount,
			Status:     draft.Status,
			Party:      draft.Party,
			RecordedAt: draft.RecordedAt,
		}
		if payment.RecordedAt.IsZero() {
			payment.RecordedAt = s.now()
		}
		var err error
		created, err = tx.CreatePayment(payment)
		return created.ID, err
	})
	if err != nil {
		return Payment{}, res, err
	}
	return created, res, nil
}

// SetPaymentStatus settles or fails a pending payment. Completed and failed
// payments are final.
func (s *Service) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (Payment, Result, error) {
	var updated Payment
	res, err := s.run(ctx, "set_payment_status", domain.EntityPayment, func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdatePayment(id, func(p *Payment) error {
			switch {
			case status != domain.PaymentCompleted && status != domain.PaymentPending && status != domain.PaymentFailed:
				return domain.NewValidationError(domain.EntityPayment, "status", "must be one of [Completed Pending Failed]")
			case p.Status != domain.PaymentPending && p.Status != status:
				return domain.NewValidationError(domain.EntityPayment, "status", "payment "+string(p.Status)+" is final")
			}
			p.Status = status
			return nil
		})
		return id, err
	})
	if err != nil {
		return Payment{}, res, err
	}
	return updated, res, nil
}
