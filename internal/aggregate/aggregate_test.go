package aggregate

import (
	"encoding/json"
	"testing"
	"time"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

func TestCropDistributionOthersNeverNegative(t *testing.T) {
	farmers := []domain.Farmer{
		{Crops: []string{"Paddy", "Maize", "Cotton"}},
		{Crops: []string{"paddy"}},
	}
	res := CropDistribution(farmers, DefaultCrops)
	if res.Others != 0 {
		t.Fatalf("expected others floored at 0, got %d", res.Others)
	}
	sum := 0
	for _, c := range res.Crops {
		sum += c.Farmers
	}
	if sum < len(farmers) {
		t.Fatalf("expected counts to cover all farmers, got %d", sum)
	}
	if res.Crops[0].Crop != "Paddy" || res.Crops[0].Farmers != 2 {
		t.Fatalf("expected case-insensitive paddy count 2, got %+v", res.Crops[0])
	}
}

func TestCropDistributionOthersCountsUnlisted(t *testing.T) {
	farmers := []domain.Farmer{
		{Crops: []string{"Paddy"}},
		{Crops: []string{"Turmeric"}},
		{Crops: []string{}},
	}
	res := CropDistribution(farmers, DefaultCrops)
	if res.Others != 2 || res.Farmers != 3 {
		t.Fatalf("expected 2 others of 3, got %+v", res)
	}
}

func TestPerformanceRatioNotApplicable(t *testing.T) {
	r := PerformanceRatio(domain.Staff{TasksAssigned: 0, TasksCompleted: 0})
	if r.Defined() {
		t.Fatalf("expected undefined ratio")
	}
	if _, ok := r.Value(); ok {
		t.Fatalf("expected no value")
	}
	if r.String() != "N/A" {
		t.Fatalf("expected N/A, got %s", r)
	}
	raw, err := json.Marshal(r)
	if err != nil || string(raw) != "null" {
		t.Fatalf("expected null json, got %s (%v)", raw, err)
	}
}

func TestPerformanceRatioValue(t *testing.T) {
	r := PerformanceRatio(domain.Staff{TasksAssigned: 8, TasksCompleted: 6})
	v, ok := r.Value()
	if !ok || v != 0.75 {
		t.Fatalf("expected 0.75, got %v %v", v, ok)
	}
	if r.String() != "75.0%" {
		t.Fatalf("unexpected string %s", r)
	}
}

func TestAttendanceRate(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := domain.Staff{Attendance: []domain.AttendanceMark{
		{Date: day, Present: true},
		{Date: day.AddDate(0, 0, 1), Present: false},
		{Date: day.AddDate(0, 0, 2), Present: true},
		{Date: day.AddDate(0, 0, 3), Present: true},
	}}
	if p, _ := AttendanceRate(s).Percent(); p != 75 {
		t.Fatalf("expected 75%%, got %v", p)
	}
	if AttendanceRate(domain.Staff{}).Defined() {
		t.Fatalf("expected undefined attendance with no marks")
	}
}

func TestInventorySummary(t *testing.T) {
	items := []domain.InventoryItem{
		{Base: domain.Base{ID: "INV-001"}, Name: "Urea", CurrentStock: decimal.Zero, MinimumThreshold: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(5)},
		{Base: domain.Base{ID: "INV-002"}, Name: "DAP", CurrentStock: decimal.NewFromInt(5), MinimumThreshold: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(2)},
		{Base: domain.Base{ID: "INV-003"}, Name: "Seeds", CurrentStock: decimal.NewFromInt(50), MinimumThreshold: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(1)},
	}
	r := InventorySummary(items)
	if r.InStock != 1 || r.LowStock != 1 || r.OutOfStock != 1 {
		t.Fatalf("unexpected counts %+v", r)
	}
	if len(r.Alerts) != 2 || r.Alerts[0].Status != domain.OutOfStock || r.Alerts[1].Status != domain.LowStock {
		t.Fatalf("unexpected alerts %+v", r.Alerts)
	}
	if !r.TotalValue.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected value 60, got %s", r.TotalValue)
	}
}

func TestOrderPipelineHasEveryStage(t *testing.T) {
	got := OrderPipeline([]domain.Order{
		{Status: domain.OrderPending, Total: decimal.NewFromInt(10)},
		{Status: domain.OrderPending, Total: decimal.NewFromInt(5)},
		{Status: domain.OrderFulfilled, Total: decimal.NewFromInt(7)},
	})
	if len(got) != len(domain.OrderStatuses) {
		t.Fatalf("expected %d stages, got %d", len(domain.OrderStatuses), len(got))
	}
	if got[0].Orders != 2 || !got[0].Value.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected pending stage %+v", got[0])
	}
	if got[1].Orders != 0 || got[2].Orders != 1 {
		t.Fatalf("unexpected stages %+v", got)
	}
}

func TestClusterSummariesGroupsAndSorts(t *testing.T) {
	visit := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	farmers := []domain.Farmer{
		{Cluster: "North", Status: domain.FarmerActive, OutstandingDues: decimal.NewFromInt(100)},
		{Cluster: "north", Status: domain.FarmerDormant, LastVisit: &visit},
		{Cluster: "East", Status: domain.FarmerActive},
		{Status: domain.FarmerInactive},
	}
	staff := []domain.Staff{
		{Name: "Lakshmi", Role: domain.RoleModerator, Cluster: "North"},
		{Name: "Arjun", Role: domain.RoleAdmin},
	}
	got := ClusterSummaries(farmers, staff)
	if len(got) != 3 {
		t.Fatalf("expected 3 clusters, got %+v", got)
	}
	if got[0].Cluster != "East" || got[1].Cluster != "North" || got[2].Cluster != UnassignedCluster {
		t.Fatalf("unexpected order %+v", got)
	}
	north := got[1]
	if north.Farmers != 2 || north.Active != 1 || north.Unvisited != 1 {
		t.Fatalf("unexpected north summary %+v", north)
	}
	if len(north.Moderators) != 1 || north.Moderators[0] != "Lakshmi" {
		t.Fatalf("unexpected moderators %+v", north.Moderators)
	}
}

func TestDashboardsOnEmptySnapshot(t *testing.T) {
	ov := Overview(domain.Snapshot{}, Options{})
	if ov.Membership.Total != 0 || !ov.TotalRevenue.IsZero() || ov.TeamPerformance.Defined() {
		t.Fatalf("expected neutral overview, got %+v", ov)
	}
	if len(ov.Revenue) != len(DefaultRevenueCategories) || len(ov.Crops.Crops) != len(DefaultCrops) {
		t.Fatalf("expected default categories and crops")
	}
	ops := Operations(domain.Snapshot{})
	if len(ops.Staff) != 0 || ops.PendingPayments != 0 {
		t.Fatalf("expected empty operations, got %+v", ops)
	}
	cl := Cluster(domain.Snapshot{}, "Nowhere", Options{})
	if cl.Summary.Cluster != "Nowhere" || cl.Summary.Farmers != 0 {
		t.Fatalf("expected empty cluster, got %+v", cl.Summary)
	}
	if _, err := json.Marshal(ov); err != nil {
		t.Fatalf("marshal overview: %v", err)
	}
}

func TestClusterDashboardFiltersByCluster(t *testing.T) {
	snap := domain.Snapshot{
		Farmers: []domain.Farmer{
			{Cluster: "North", Status: domain.FarmerActive, Crops: []string{"Paddy"}},
			{Cluster: "South", Status: domain.FarmerActive, Crops: []string{"Maize"}},
		},
		Staff: []domain.Staff{
			{Name: "Lakshmi", Role: domain.RoleModerator, Cluster: "North", TasksAssigned: 4, TasksCompleted: 2},
			{Name: "Ravi", Role: domain.RoleModerator, Cluster: "South"},
		},
	}
	cl := Cluster(snap, "north", Options{Crops: []string{"Paddy", "Maize"}})
	if cl.Summary.Farmers != 1 || cl.Membership.Active != 1 {
		t.Fatalf("unexpected summary %+v", cl.Summary)
	}
	if cl.Crops.Crops[0].Farmers != 1 || cl.Crops.Crops[1].Farmers != 0 {
		t.Fatalf("unexpected crops %+v", cl.Crops)
	}
	if len(cl.Moderators) != 1 || cl.Moderators[0].Name != "Lakshmi" {
		t.Fatalf("unexpected moderators %+v", cl.Moderators)
	}
}
