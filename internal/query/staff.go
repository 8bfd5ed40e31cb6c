package query

import (
	"cmp"
	"strings"

	"fpoconsole/pkg/domain"
)

// StaffSortKey enumerates sortable staff fields.
type StaffSortKey string

const (
	StaffSortByName       StaffSortKey = "name"
	StaffSortByRole       StaffSortKey = "role"
	StaffSortByCompletion StaffSortKey = "tasks_completed"
)

// StaffCriteria describes one staff directory request.
type StaffCriteria struct {
	Name      string
	Role      string
	Status    string
	Cluster   string
	SortBy    StaffSortKey
	Direction Direction
	Page      int
	PageSize  int
}

// StaffQuery converts criteria into a generic query.
func StaffQuery(c StaffCriteria) Query[domain.Staff] {
	var preds []Predicate[domain.Staff]
	if name := strings.TrimSpace(c.Name); name != "" {
		preds = append(preds, func(s domain.Staff) bool { return containsFold(s.Name, name) })
	}
	if !isWildcard(c.Role) {
		role := strings.TrimSpace(c.Role)
		preds = append(preds, func(s domain.Staff) bool { return strings.EqualFold(string(s.Role), role) })
	}
	if !isWildcard(c.Status) {
		status := strings.TrimSpace(c.Status)
		preds = append(preds, func(s domain.Staff) bool { return strings.EqualFold(string(s.Status), status) })
	}
	if !isWildcard(c.Cluster) {
		cluster := strings.TrimSpace(c.Cluster)
		preds = append(preds, func(s domain.Staff) bool { return strings.EqualFold(s.Cluster, cluster) })
	}
	q := Query[domain.Staff]{Filter: And(preds...), Page: c.Page, PageSize: c.PageSize}
	var compare Comparator[domain.Staff]
	switch c.SortBy {
	case StaffSortByName:
		compare = func(a, b domain.Staff) int { return strings.Compare(a.Name, b.Name) }
	case StaffSortByRole:
		compare = func(a, b domain.Staff) int { return strings.Compare(string(a.Role), string(b.Role)) }
	case StaffSortByCompletion:
		compare = func(a, b domain.Staff) int { return cmp.Compare(a.TasksCompleted, b.TasksCompleted) }
	}
	if compare != nil {
		q.Sort = &SortSpec[domain.Staff]{Compare: compare, Direction: c.Direction}
	}
	return q
}

// StaffMembers runs criteria against a staff collection.
func StaffMembers(staff []domain.Staff, c StaffCriteria) Page[domain.Staff] {
	return Run(staff, StaffQuery(c))
}
