package query

import (
	"strings"
	"time"

	"fpoconsole/pkg/domain"
)

// FarmerSortKey enumerates the sortable farmer fields.
type FarmerSortKey string

const (
	SortByName           FarmerSortKey = "name"
	SortByPhone          FarmerSortKey = "phone"
	SortByMembershipDate FarmerSortKey = "membership_date"
	SortByLastVisit      FarmerSortKey = "last_visit"
)

// FarmerSortKeys lists accepted sort keys.
var FarmerSortKeys = []FarmerSortKey{SortByName, SortByPhone, SortByMembershipDate, SortByLastVisit}

// FarmerCriteria describes one farmer directory request. Callers reset Page
// to 1 whenever any filter or sort field changes.
type FarmerCriteria struct {
	Name      string
	Phone     string
	Status    string
	Crop      string
	Cluster   string
	SortBy    FarmerSortKey
	Direction Direction
	Page      int
	PageSize  int
}

// FarmerFilter builds the conjunction of the criteria's active predicates.
func FarmerFilter(c FarmerCriteria) Predicate[domain.Farmer] {
	var preds []Predicate[domain.Farmer]
	if name := strings.TrimSpace(c.Name); name != "" {
		preds = append(preds, func(f domain.Farmer) bool { return containsFold(f.Name, name) })
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		preds = append(preds, func(f domain.Farmer) bool { return strings.Contains(f.Phone, phone) })
	}
	if !isWildcard(c.Status) {
		status := strings.TrimSpace(c.Status)
		preds = append(preds, func(f domain.Farmer) bool { return strings.EqualFold(string(f.Status), status) })
	}
	if !isWildcard(c.Crop) {
		crop := strings.TrimSpace(c.Crop)
		preds = append(preds, func(f domain.Farmer) bool { return f.HasCrop(crop) })
	}
	if !isWildcard(c.Cluster) {
		cluster := strings.TrimSpace(c.Cluster)
		preds = append(preds, func(f domain.Farmer) bool { return strings.EqualFold(f.Cluster, cluster) })
	}
	return And(preds...)
}

// FarmerComparator returns the comparator for key, or nil for an unknown key.
func FarmerComparator(key FarmerSortKey) Comparator[domain.Farmer] {
	switch key {
	case SortByName:
		return func(a, b domain.Farmer) int { return strings.Compare(a.Name, b.Name) }
	case SortByPhone:
		return func(a, b domain.Farmer) int { return strings.Compare(a.Phone, b.Phone) }
	case SortByMembershipDate:
		return func(a, b domain.Farmer) int { return a.MembershipDate.Compare(b.MembershipDate) }
	case SortByLastVisit:
		return func(a, b domain.Farmer) int { return compareOptionalTime(a.LastVisit, b.LastVisit) }
	default:
		return nil
	}
}

// compareOptionalTime orders missing times before present ones.
func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// FarmerQuery converts criteria into a generic query.
func FarmerQuery(c FarmerCriteria) Query[domain.Farmer] {
	q := Query[domain.Farmer]{
		Filter:   FarmerFilter(c),
		Page:     c.Page,
		PageSize: c.PageSize,
	}
	if compare := FarmerComparator(c.SortBy); compare != nil {
		q.Sort = &SortSpec[domain.Farmer]{Compare: compare, Direction: c.Direction}
	}
	return q
}

// Farmers runs criteria against a farmer collection.
func Farmers(farmers []domain.Farmer, c FarmerCriteria) Page[domain.Farmer] {
	return Run(farmers, FarmerQuery(c))
}
