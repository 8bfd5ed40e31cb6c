package core

import (
	"context"
	"fmt"
	"strings"

	"fpoconsole/pkg/domain"
)

// NewModeratorClusterRule blocks moderators without a cluster and any other
// role carrying one.
func NewModeratorClusterRule() domain.Rule {
	return moderatorClusterRule{}
}

type moderatorClusterRule struct{}

func (moderatorClusterRule) Name() string { return "moderator_cluster" }

func (r moderatorClusterRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, member := range view.ListStaff() {
		hasCluster := strings.TrimSpace(member.Cluster) != ""
		var msg string
		switch {
		case member.Role == domain.RoleModerator && !hasCluster:
			msg = fmt.Sprintf("moderator %s (%s) has no cluster", member.Name, member.ID)
		case member.Role != domain.RoleModerator && hasCluster:
			msg = fmt.Sprintf("%s %s (%s) cannot own cluster %s", member.Role, member.Name, member.ID, member.Cluster)
		default:
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityBlock,
			Message:  msg,
			Entity:   domain.EntityStaff,
			EntityID: member.ID,
		})
	}
	return res, nil
}
