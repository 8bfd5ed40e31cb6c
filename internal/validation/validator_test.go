package validation

import (
	"errors"
	"testing"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

func TestDraftAcceptsValidFarmer(t *testing.T) {
	v := New()
	draft := domain.FarmerDraft{Name: "Ramesh", Phone: "9876543210", ShareCapital: decimal.NewFromInt(1000)}
	if err := v.Draft(domain.EntityFarmer, draft); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
}

func TestDraftReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Draft(domain.EntityFarmer, domain.FarmerDraft{OutstandingDues: decimal.NewFromInt(-5)})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "phone", "outstanding_dues"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s in fields, got %v", field, verr.Fields)
		}
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected errors.Is ErrValidation")
	}
}

func TestDraftModeratorRequiresCluster(t *testing.T) {
	v := New()
	err := v.Draft(domain.EntityStaff, domain.StaffDraft{Name: "Lakshmi", Role: domain.RoleModerator})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg := verr.Fields["cluster"]; msg != "is required when Role is Moderator" {
		t.Fatalf("unexpected cluster message %q", msg)
	}
	if err := v.Draft(domain.EntityStaff, domain.StaffDraft{Name: "Arjun", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin without cluster should pass: %v", err)
	}
}

func TestDraftTasksCompletedBounded(t *testing.T) {
	v := New()
	err := v.Draft(domain.EntityStaff, domain.StaffDraft{Name: "Sita", Role: domain.RoleOther, TasksAssigned: 2, TasksCompleted: 3})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["tasks_completed"]; !ok {
		t.Fatalf("expected tasks_completed failure, got %v", verr.Fields)
	}
}

func TestDraftNestedOrderItems(t *testing.T) {
	v := New()
	draft := domain.OrderDraft{
		Type:  domain.OrderInput,
		Items: []domain.OrderItemDraft{{Name: "", Quantity: decimal.NewFromInt(1)}},
	}
	err := v.Draft(domain.EntityOrder, draft)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["items[0].name"]; !ok {
		t.Fatalf("expected nested item field, got %v", verr.Fields)
	}
}
