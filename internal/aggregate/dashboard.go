package aggregate

import (
	"slices"
	"strings"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// Options fixes the category lists the dashboards always report.
type Options struct {
	Crops             []string
	RevenueCategories []string
}

// DefaultOptions reports the default crops and revenue categories.
func DefaultOptions() Options {
	return Options{
		Crops:             slices.Clone(DefaultCrops),
		RevenueCategories: slices.Clone(DefaultRevenueCategories),
	}
}

func (o Options) withDefaults() Options {
	if len(o.Crops) == 0 {
		o.Crops = DefaultCrops
	}
	if len(o.RevenueCategories) == 0 {
		o.RevenueCategories = DefaultRevenueCategories
	}
	return o
}

// OverviewDashboard is the organization-wide summary shown to the CEO.
type OverviewDashboard struct {
	Membership      MembershipSummary      `json:"membership"`
	CashFlow        CashFlowSummary        `json:"cash_flow"`
	Revenue         []CategoryTotal        `json:"revenue"`
	TotalRevenue    decimal.Decimal        `json:"total_revenue"`
	Crops           CropDistributionResult `json:"crop_distribution"`
	Pipeline        []StageCount           `json:"order_pipeline"`
	Inventory       InventoryReport        `json:"inventory"`
	Clusters        []ClusterSummary       `json:"clusters"`
	TeamSize        int                    `json:"team_size"`
	TeamPerformance Ratio                  `json:"team_performance"`
}

// Overview computes the CEO dashboard from one snapshot.
func Overview(snap domain.Snapshot, opts Options) OverviewDashboard {
	opts = opts.withDefaults()
	return OverviewDashboard{
		Membership:      Membership(snap.Farmers),
		CashFlow:        CashFlow(snap.Payments),
		Revenue:         RevenueByCategory(snap.Payments, opts.RevenueCategories...),
		TotalRevenue:    TotalRevenue(snap.Payments),
		Crops:           CropDistribution(snap.Farmers, opts.Crops),
		Pipeline:        OrderPipeline(snap.Orders),
		Inventory:       InventorySummary(snap.Inventory),
		Clusters:        ClusterSummaries(snap.Farmers, snap.Staff),
		TeamSize:        len(snap.Staff),
		TeamPerformance: TeamPerformance(snap.Staff),
	}
}

// OperationsDashboard is the day-to-day view shown to administrators.
type OperationsDashboard struct {
	Staff           []StaffScore    `json:"staff"`
	Inventory       InventoryReport `json:"inventory"`
	InputPipeline   []StageCount    `json:"input_pipeline"`
	OutputPipeline  []StageCount    `json:"output_pipeline"`
	PendingPayments int             `json:"pending_payments"`
	CashFlow        CashFlowSummary `json:"cash_flow"`
}

// Operations computes the admin dashboard from one snapshot.
func Operations(snap domain.Snapshot) OperationsDashboard {
	flow := CashFlow(snap.Payments)
	return OperationsDashboard{
		Staff:           StaffPerformance(snap.Staff),
		Inventory:       InventorySummary(snap.Inventory),
		InputPipeline:   OrderPipeline(OrdersOfType(snap.Orders, domain.OrderInput)),
		OutputPipeline:  OrderPipeline(OrdersOfType(snap.Orders, domain.OrderOutput)),
		PendingPayments: flow.PendingCount,
		CashFlow:        flow,
	}
}

// ClusterDashboard is the moderator's view of a single cluster.
type ClusterDashboard struct {
	Summary    ClusterSummary         `json:"summary"`
	Crops      CropDistributionResult `json:"crop_distribution"`
	Membership MembershipSummary      `json:"membership"`
	Moderators []StaffScore           `json:"moderators"`
}

// Cluster computes the moderator dashboard for the named cluster, matched
// case-insensitively. An unknown cluster yields an empty dashboard.
func Cluster(snap domain.Snapshot, name string, opts Options) ClusterDashboard {
	opts = opts.withDefaults()
	name = clusterKey(name)
	farmers := make([]domain.Farmer, 0)
	for _, f := range snap.Farmers {
		if strings.EqualFold(clusterKey(f.Cluster), name) {
			farmers = append(farmers, f)
		}
	}
	moderators := make([]domain.Staff, 0)
	for _, s := range snap.Staff {
		if s.Role == domain.RoleModerator && strings.EqualFold(s.Cluster, name) {
			moderators = append(moderators, s)
		}
	}
	summary := ClusterSummary{Cluster: name, Moderators: []string{}}
	if sums := ClusterSummaries(farmers, moderators); len(sums) == 1 {
		summary = sums[0]
	}
	return ClusterDashboard{
		Summary:    summary,
		Crops:      CropDistribution(farmers, opts.Crops),
		Membership: Membership(farmers),
		Moderators: StaffPerformance(moderators),
	}
}
