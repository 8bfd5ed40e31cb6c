// Package query filters, sorts and paginates entity collections. Every
// function is pure and safe to call concurrently on immutable snapshots.
package query

import (
	"slices"
	"strings"
)

// DefaultPageSize applies when a query carries no positive page size.
const DefaultPageSize = 10

// Predicate reports whether a record should be kept.
type Predicate[T any] func(T) bool

// And combines predicates with logical AND. Nil predicates are ignored and
// an empty conjunction matches everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(v T) bool {
		for _, p := range active {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records that satisfy pred, preserving order.
func Filter[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Direction selects ascending or descending order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "desc"/"descending" to Descending and anything else to Ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Comparator orders two records like strings.Compare.
type Comparator[T any] func(a, b T) int

// SortSpec is a single active sort key with a direction.
type SortSpec[T any] struct {
	Compare   Comparator[T]
	Direction Direction
}

// Sort returns a sorted copy. Equal elements keep their input order in both
// directions.
func Sort[T any](items []T, spec SortSpec[T]) []T {
	out := slices.Clone(items)
	if spec.Compare == nil {
		return out
	}
	cmp := spec.Compare
	if spec.Direction == Descending {
		cmp = func(a, b T) int { return spec.Compare(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Page is one window of a filtered and sorted sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate returns the 1-based page of the given size. Pages past the end are
// empty rather than an error.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		number = 1
	}
	total := len(items)
	page := Page[T]{
		Items:      []T{},
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: total / size,
	}
	if total%size != 0 {
		page.TotalPages++
	}
	if total == 0 || number-1 > (total-1)/size {
		return page
	}
	start := (number - 1) * size
	end := min(start+size, total)
	page.Items = slices.Clone(items[start:end])
	return page
}

// Query bundles the three stages applied by Run.
type Query[T any] struct {
	Filter   Predicate[T]
	Sort     *SortSpec[T]
	Page     int
	PageSize int
}

// Run applies filter, then sort, then pagination.
func Run[T any](items []T, q Query[T]) Page[T] {
	filtered := Filter(items, q.Filter)
	if q.Sort != nil {
		filtered = Sort(filtered, *q.Sort)
	}
	return Paginate(filtered, q.Page, q.PageSize)
}

// containsFold reports whether substr appears in s ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// isWildcard treats empty and "All" as no constraint.
func isWildcard(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "all")
}
