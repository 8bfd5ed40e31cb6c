package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// AddFarmer registers a new member. Name and phone are required; status
// defaults to Active and membership date to today.
func (s *Service) AddFarmer(ctx context.Context, draft domain.FarmerDraft) (Farmer, Result, error) {
	var created Farmer
	res, err := s.run(ctx, "add_farmer", domain.EntityFarmer, func(tx Transaction) (string, error) {
		draft = normalizeFarmerDraft(draft)
		if err := s.validator.Draft(domain.EntityFarmer, draft); err != nil {
			return "", err
		}
		farmer := Farmer{
			Name:            draft.Name,
			Phone:           draft.Phone,
			Village:         draft.Village,
			Cluster:         draft.Cluster,
			LandSize:        draft.LandSize,
			MembershipDate:  draft.MembershipDate,
			Status:          draft.Status,
			OutstandingDues: draft.OutstandingDues,
			ShareCapital:    draft.ShareCapital,
			Crops:           draft.Crops,
			RiskScore:       draft.RiskScore,
			LastVisit:       draft.LastVisit,
		}
		if farmer.Status == "" {
			farmer.Status = domain.FarmerActive
		}
		if farmer.MembershipDate.IsZero() {
			farmer.MembershipDate = s.now()
		}
		var err error
		created, err = tx.CreateFarmer(farmer)
		return created.ID, err
	})
	if err != nil {
		return Farmer{}, res, err
	}
	return created, res, nil
}

func normalizeFarmerDraft(d domain.FarmerDraft) domain.FarmerDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Village = strings.TrimSpace(d.Village)
	d.Cluster = strings.TrimSpace(d.Cluster)
	d.RiskScore = strings.TrimSpace(d.RiskScore)
	crops := make([]string, 0, len(d.Crops))
	for _, c := range d.Crops {
		crops = append(crops, strings.TrimSpace(c))
	}
	d.Crops = crops
	return d
}

// UpdateFarmerStatus moves a farmer between Active, Dormant and Inactive.
func (s *Service) UpdateFarmerStatus(ctx context.Context, id string, status domain.FarmerStatus) (Farmer, Result, error) {
	return s.updateFarmer(ctx, "update_farmer_status", id, func(f *Farmer) error {
		if !slices.Contains(domain.FarmerStatuses, status) {
			return domain.NewValidationError(domain.EntityFarmer, "status", fmt.Sprintf("unknown status %q", status))
		}
		f.Status = status
		return nil
	})
}

// RecordFarmerVisit stamps the last field visit. A zero time records now.
func (s *Service) RecordFarmerVisit(ctx context.Context, id string, at time.Time) (Farmer, Result, error) {
	if at.IsZero() {
		at = s.now()
	}
	return s.updateFarmer(ctx, "record_farmer_visit", id, func(f *Farmer) error {
		visit := at
		f.LastVisit = &visit
		return nil
	})
}

// AddFarmerNote appends a free-form note to the farmer's record.
func (s *Service) AddFarmerNote(ctx context.Context, id, note string) (Farmer, Result, error) {
	note = strings.TrimSpace(note)
	return s.updateFarmer(ctx, "add_farmer_note", id, func(f *Farmer) error {
		if note == "" {
			return domain.NewValidationError(domain.EntityFarmer, "notes", "is required")
		}
		f.Notes = append(f.Notes, note)
		return nil
	})
}

// AdjustFarmerDues adds delta to outstanding dues; a negative delta records a
// repayment. Dues never drop below zero.
func (s *Service) AdjustFarmerDues(ctx context.Context, id string, delta decimal.Decimal) (Farmer, Result, error) {
	return s.updateFarmer(ctx, "adjust_farmer_dues", id, func(f *Farmer) error {
		next := f.OutstandingDues.Add(delta)
		if next.IsNegative() {
			return domain.NewValidationError(domain.EntityFarmer, "outstanding_dues", fmt.Sprintf("repayment exceeds dues of %s", f.OutstandingDues))
		}
		f.OutstandingDues = next
		return nil
	})
}

func (s *Service) updateFarmer(ctx context.Context, op, id string, mutator func(*Farmer) error) (Farmer, Result, error) {
	var updated Farmer
	res, err := s.run(ctx, op, domain.EntityFarmer, func(tx Transaction) (string, error) {
		var err error
		updated, err = tx.UpdateFarmer(id, mutator)
		return id, err
	})
	if err != nil {
		return Farmer{}, res, err
	}
	return updated, res, nil
}
