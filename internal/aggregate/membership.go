package aggregate

import (
	"slices"
	"strings"

	"fpoconsole/pkg/domain"

	"github.com/shopspring/decimal"
)

// UnassignedCluster groups farmers without a cluster.
const UnassignedCluster = "Unassigned"

// MembershipSummary rolls up the farmer register.
type MembershipSummary struct {
	Total           int             `json:"total"`
	Active          int             `json:"active"`
	Dormant         int             `json:"dormant"`
	Inactive        int             `json:"inactive"`
	WithDues        int             `json:"with_dues"`
	OutstandingDues decimal.Decimal `json:"outstanding_dues"`
	ShareCapital    decimal.Decimal `json:"share_capital"`
	LandSize        decimal.Decimal `json:"land_size"`
}

// Membership summarizes farmers by status and money held.
func Membership(farmers []domain.Farmer) MembershipSummary {
	m := MembershipSummary{Total: len(farmers)}
	for _, f := range farmers {
		switch f.Status {
		case domain.FarmerActive:
			m.Active++
		case domain.FarmerDormant:
			m.Dormant++
		case domain.FarmerInactive:
			m.Inactive++
		}
		if f.OutstandingDues.IsPositive() {
			m.WithDues++
		}
		m.OutstandingDues = m.OutstandingDues.Add(f.OutstandingDues)
		m.ShareCapital = m.ShareCapital.Add(f.ShareCapital)
		m.LandSize = m.LandSize.Add(f.LandSize)
	}
	return m
}

// ClusterSummary rolls up one cluster.
type ClusterSummary struct {
	Cluster         string          `json:"cluster"`
	Moderators      []string        `json:"moderators"`
	Farmers         int             `json:"farmers"`
	Active          int             `json:"active"`
	Unvisited       int             `json:"unvisited"`
	OutstandingDues decimal.Decimal `json:"outstanding_dues"`
	ShareCapital    decimal.Decimal `json:"share_capital"`
}

func clusterKey(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnassignedCluster
	}
	return name
}

// ClusterSummaries groups farmers and moderators by cluster, sorted by name.
// Cluster names are matched case-insensitively; the first spelling seen wins.
func ClusterSummaries(farmers []domain.Farmer, staff []domain.Staff) []ClusterSummary {
	byKey := make(map[string]*ClusterSummary)
	get := func(name string) *ClusterSummary {
		name = clusterKey(name)
		k := strings.ToLower(name)
		c, ok := byKey[k]
		if !ok {
			c = &ClusterSummary{Cluster: name, Moderators: []string{}}
			byKey[k] = c
		}
		return c
	}
	for _, f := range farmers {
		c := get(f.Cluster)
		c.Farmers++
		if f.Status == domain.FarmerActive {
			c.Active++
		}
		if f.LastVisit == nil {
			c.Unvisited++
		}
		c.OutstandingDues = c.OutstandingDues.Add(f.OutstandingDues)
		c.ShareCapital = c.ShareCapital.Add(f.ShareCapital)
	}
	for _, s := range staff {
		if s.Role != domain.RoleModerator || s.Cluster == "" {
			continue
		}
		c := get(s.Cluster)
		c.Moderators = append(c.Moderators, s.Name)
	}
	out := make([]ClusterSummary, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b ClusterSummary) int {
		return strings.Compare(strings.ToLower(a.Cluster), strings.ToLower(b.Cluster))
	})
	return out
}
