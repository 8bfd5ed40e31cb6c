package core

import (
	"context"
	"fmt"

	"fpoconsole/pkg/domain"
)

// NewStaffTaskBalanceRule blocks negative task counters and completed tasks
// exceeding assigned ones.
func NewStaffTaskBalanceRule() domain.Rule {
	return staffTaskBalanceRule{}
}

type staffTaskBalanceRule struct{}

func (staffTaskBalanceRule) Name() string { return "staff_task_balance" }

func (r staffTaskBalanceRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, member := range view.ListStaff() {
		if member.TasksAssigned >= 0 && member.TasksCompleted >= 0 && member.TasksCompleted <= member.TasksAssigned {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("staff %s (%s) tasks out of balance: %d/%d completed", member.Name, member.ID, member.TasksCompleted, member.TasksAssigned),
			Entity:   domain.EntityStaff,
			EntityID: member.ID,
		})
	}
	return res, nil
}
