package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"fpoconsole/internal/query"
	"fpoconsole/pkg/domain"
)

func TestAddFarmerAssignsFreshIDs(t *testing.T) {
	svc := newTestService(t)
	seen := map[string]bool{}
	for i, name := range []string{"Ramesh", "Suresh", "Kavya"} {
		before := len(svc.Snapshot().Farmers)
		f := mustAddFarmer(t, svc, name)
		if got := len(svc.Snapshot().Farmers); got != before+1 {
			t.Fatalf("expected size %d, got %d", before+1, got)
		}
		if seen[f.ID] {
			t.Fatalf("identifier %s reused", f.ID)
		}
		seen[f.ID] = true
		if want := domain.FarmerIDs.Format(uint64(i + 1)); f.ID != want {
			t.Fatalf("expected %s, got %s", want, f.ID)
		}
	}
}

func TestAddFarmerDefaults(t *testing.T) {
	svc := newTestService(t)
	f, _, err := svc.AddFarmer(context.Background(), domain.FarmerDraft{Name: "  Ramesh ", Phone: " 9876543210 ", Crops: []string{" Paddy "}})
	if err != nil {
		t.Fatalf("add farmer: %v", err)
	}
	if f.Name != "Ramesh" || f.Phone != "9876543210" {
		t.Fatalf("expected trimmed fields, got %q %q", f.Name, f.Phone)
	}
	if f.Status != domain.FarmerActive {
		t.Fatalf("expected Active default, got %s", f.Status)
	}
	if !f.MembershipDate.Equal(fixedNow) || !f.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected clock dates, got %v %v", f.MembershipDate, f.CreatedAt)
	}
	if len(f.Crops) != 1 || f.Crops[0] != "Paddy" {
		t.Fatalf("unexpected crops %v", f.Crops)
	}
}

func TestAddFarmerRejectsMissingFields(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.AddFarmer(context.Background(), domain.FarmerDraft{Name: "   ", Phone: "1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(svc.Snapshot().Farmers) != 0 {
		t.Fatalf("expected store unchanged")
	}
	f := mustAddFarmer(t, svc, "After")
	if f.ID != "FRM-0001" {
		t.Fatalf("rejected draft must not consume an identifier, got %s", f.ID)
	}
}

func TestAddStaffModeratorWithoutClusterRejected(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.AddStaffMember(context.Background(), domain.StaffDraft{Name: "Lakshmi", Role: domain.RoleModerator, Cluster: "  "})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["cluster"]; !ok {
		t.Fatalf("expected cluster field, got %v", verr.Fields)
	}
	if len(svc.Snapshot().Staff) != 0 {
		t.Fatalf("expected staff unchanged")
	}
}

func TestAddStaffClearsClusterForOtherRoles(t *testing.T) {
	svc := newTestService(t)
	for _, role := range []domain.StaffRole{domain.RoleCEO, domain.RoleAdmin, domain.RoleAccountant, domain.RoleOther} {
		m, _, err := svc.AddStaffMember(context.Background(), domain.StaffDraft{Name: "Member", Role: role, Cluster: "North"})
		if err != nil {
			t.Fatalf("add %s: %v", role, err)
		}
		if m.Cluster != "" {
			t.Fatalf("expected cluster cleared for %s, got %q", role, m.Cluster)
		}
	}
	mod, _, err := svc.AddStaffMember(context.Background(), domain.StaffDraft{Name: "Lakshmi", Role: domain.RoleModerator, Cluster: "North"})
	if err != nil {
		t.Fatalf("add moderator: %v", err)
	}
	if mod.Cluster != "North" || mod.Status != domain.StaffActive || mod.ID != "STF-005" {
		t.Fatalf("unexpected moderator %+v", mod)
	}
}

func TestStaffTasksAndAttendance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	m, _, err := svc.AddStaffMember(ctx, domain.StaffDraft{Name: "Arjun", Role: domain.RoleAdmin, TasksAssigned: 4, TasksCompleted: 1})
	if err != nil {
		t.Fatalf("add staff: %v", err)
	}
	if _, _, err := svc.UpdateStaffTasks(ctx, m.ID, 3, 4); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if m, _, err = svc.UpdateStaffTasks(ctx, m.ID, 6, 3); err != nil || m.TasksAssigned != 6 {
		t.Fatalf("update tasks: %+v %v", m, err)
	}
	day := fixedNow.AddDate(0, 0, -1)
	if _, _, err := svc.MarkAttendance(ctx, m.ID, fixedNow, true); err != nil {
		t.Fatalf("mark today: %v", err)
	}
	if _, _, err := svc.MarkAttendance(ctx, m.ID, day, true); err != nil {
		t.Fatalf("mark yesterday: %v", err)
	}
	m, _, err = svc.MarkAttendance(ctx, m.ID, day.Add(3*time.Hour), false)
	if err != nil {
		t.Fatalf("re-mark: %v", err)
	}
	if len(m.Attendance) != 2 {
		t.Fatalf("expected one mark per day, got %+v", m.Attendance)
	}
	if m.Attendance[0].Present || !m.Attendance[1].Present || !m.Attendance[0].Date.Before(m.Attendance[1].Date) {
		t.Fatalf("unexpected marks %+v", m.Attendance)
	}
	if _, _, err := svc.SetStaffStatus(ctx, m.ID, "Retired"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := svc.SetStaffStatus(ctx, "STF-999", domain.StaffInactive); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFarmerUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	f := mustAddFarmer(t, svc, "Ramesh")
	if _, _, err := svc.AdjustFarmerDues(ctx, f.ID, dec(500)); err != nil {
		t.Fatalf("add dues: %v", err)
	}
	if _, _, err := svc.AdjustFarmerDues(ctx, f.ID, dec(-600)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected over-repayment rejected, got %v", err)
	}
	f, _, err := svc.AdjustFarmerDues(ctx, f.ID, dec(-200))
	if err != nil || !f.OutstandingDues.Equal(dec(300)) {
		t.Fatalf("expected dues 300, got %s (%v)", f.OutstandingDues, err)
	}
	if f, _, err = svc.UpdateFarmerStatus(ctx, f.ID, domain.FarmerDormant); err != nil || f.Status != domain.FarmerDormant {
		t.Fatalf("update status: %v", err)
	}
	if _, _, err := svc.UpdateFarmerStatus(ctx, f.ID, "Gone"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected unknown status rejected, got %v", err)
	}
	if f, _, err = svc.RecordFarmerVisit(ctx, f.ID, time0()); err != nil || f.LastVisit == nil || !f.LastVisit.Equal(fixedNow) {
		t.Fatalf("record visit: %+v %v", f.LastVisit, err)
	}
	if _, _, err := svc.AddFarmerNote(ctx, f.ID, " "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected empty note rejected, got %v", err)
	}
	if f, _, err = svc.AddFarmerNote(ctx, f.ID, "Needs soil test"); err != nil || len(f.Notes) != 1 {
		t.Fatalf("add note: %v %v", f.Notes, err)
	}
	if _, _, err := svc.AddFarmerNote(ctx, "FRM-0404", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeedAdvancesIdentifiers(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Seed(context.Background(), Snapshot{Farmers: []Farmer{{Base: domain.Base{ID: "FRM-0012"}, Name: "Seeded", Phone: "1"}}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f := mustAddFarmer(t, svc, "Next")
	if f.ID != "FRM-0013" {
		t.Fatalf("expected FRM-0013, got %s", f.ID)
	}
}

func TestFarmersUsesConfiguredPageSize(t *testing.T) {
	svc := newTestService(t, WithPageSize(2))
	for _, name := range []string{"c", "a", "b"} {
		mustAddFarmer(t, svc, name)
	}
	page := svc.Farmers(query.FarmerCriteria{SortBy: query.SortByName})
	if page.Size != 2 || page.TotalPages != 2 || len(page.Items) != 2 || page.Items[0].Name != "a" {
		t.Fatalf("unexpected page %+v", page)
	}
	staff := svc.StaffDirectory(query.StaffCriteria{})
	if staff.Size != 2 || staff.Total != 0 {
		t.Fatalf("unexpected staff page %+v", staff)
	}
}

func TestServiceObservability(t *testing.T) {
	log := &captureLogger{}
	metrics := &captureMetricsRecorder{}
	audit := &captureAuditRecorder{}
	svc := newTestService(t, WithLogger(log), WithMetricsRecorder(metrics), WithAuditRecorder(audit))
	mustAddFarmer(t, svc, "Ramesh")
	if _, _, err := svc.AddFarmer(context.Background(), domain.FarmerDraft{}); err == nil {
		t.Fatalf("expected rejection")
	}
	if len(metrics.calls) != 2 || !metrics.calls[0].success || metrics.calls[1].success || metrics.calls[0].op != "add_farmer" {
		t.Fatalf("unexpected metrics %+v", metrics.calls)
	}
	if !log.has("d:operation committed") || !log.has("i:operation rejected") {
		t.Fatalf("unexpected log calls %v", log.calls)
	}
	if len(audit.entries) != 2 || audit.entries[0].EntityID != "FRM-0001" || audit.entries[1].Status != AuditStatusError {
		t.Fatalf("unexpected audit entries %+v", audit.entries)
	}
}

func TestNoopDefaults(t *testing.T) {
	opts := defaultServiceOptions()
	if opts.clock == nil || opts.logger == nil || opts.metrics == nil || opts.audit == nil {
		t.Fatalf("expected defaults populated")
	}
	if opts.pageSize != query.DefaultPageSize {
		t.Fatalf("expected default page size, got %d", opts.pageSize)
	}
	var l noopLogger
	l.Debug("d", "k", 1)
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	opts.metrics.Observe(context.Background(), "noop", true, 0)
	opts.audit.Record(context.Background(), AuditEntry{})
}
