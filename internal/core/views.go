package core

import (
	"context"
	"fmt"

	"fpoconsole/internal/aggregate"
	"fpoconsole/internal/query"
	"fpoconsole/pkg/domain"
)

// Snapshot returns an immutable copy of every collection.
func (s *Service) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// Farmers returns one page of the farmer directory.
func (s *Service) Farmers(c query.FarmerCriteria) query.Page[Farmer] {
	if c.PageSize <= 0 {
		c.PageSize = s.opts.pageSize
	}
	return query.Farmers(s.store.Snapshot().Farmers, c)
}

// StaffDirectory returns one page of the staff directory.
func (s *Service) StaffDirectory(c query.StaffCriteria) query.Page[Staff] {
	if c.PageSize <= 0 {
		c.PageSize = s.opts.pageSize
	}
	return query.StaffMembers(s.store.Snapshot().Staff, c)
}

// Overview computes the organization-wide dashboard.
func (s *Service) Overview() aggregate.OverviewDashboard {
	return aggregate.Overview(s.store.Snapshot(), s.opts.aggregate)
}

// OperationsView computes the administrator dashboard.
func (s *Service) OperationsView() aggregate.OperationsDashboard {
	return aggregate.Operations(s.store.Snapshot())
}

// ClusterView computes the moderator dashboard for one cluster.
func (s *Service) ClusterView(cluster string) aggregate.ClusterDashboard {
	return aggregate.Cluster(s.store.Snapshot(), cluster, s.opts.aggregate)
}

// Seed replaces the store contents with snap, typically once at start-up. A
// dataset the rules engine blocks is rejected and the store keeps its state.
func (s *Service) Seed(ctx context.Context, snap Snapshot) error {
	if err := s.store.ImportState(ctx, snap); err != nil {
		s.opts.logger.Error("store seed rejected", "error", err)
		return fmt.Errorf("seed store: %w", err)
	}
	s.opts.logger.Info("store seeded",
		"farmers", len(snap.Farmers),
		"orders", len(snap.Orders),
		"payments", len(snap.Payments),
		"inventory", len(snap.Inventory),
		"staff", len(snap.Staff),
	)
	return nil
}

// Inventory lists stocked items in insertion order.
func (s *Service) Inventory() []domain.InventoryItem {
	return s.store.Snapshot().Inventory
}
