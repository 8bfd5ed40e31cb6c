package memory

import (
	"slices"

	"fpoconsole/pkg/domain"
)

// table keeps rows in insertion order alongside the sequence that names them.
// The sequence only ever grows; it is not derived from the row count.
type table[T any] struct {
	order []string
	rows  map[string]T
	seq   uint64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t table[T]) clone(cp func(T) T) table[T] {
	out := table[T]{
		order: append([]string(nil), t.order...),
		rows:  make(map[string]T, len(t.rows)),
		seq:   t.seq,
	}
	for k, v := range t.rows {
		out.rows[k] = cp(v)
	}
	return out
}

func (t table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	t.rows[id] = v
	t.order = append(t.order, id)
}

func (t *table[T]) replace(id string, v T) {
	t.rows[id] = v
}

func (t table[T]) list(cp func(T) T) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, cp(t.rows[id]))
	}
	return out
}

// nextID advances the sequence until it names an unused identifier.
func (t *table[T]) nextID(scheme domain.IDScheme) string {
	for {
		t.seq++
		id := scheme.Format(t.seq)
		if !t.has(id) {
			return id
		}
	}
}

// observe moves the sequence past an identifier loaded from elsewhere.
func (t *table[T]) observe(scheme domain.IDScheme, id string) {
	if n, ok := scheme.Sequence(id); ok && n > t.seq {
		t.seq = n
	}
}

type memoryState struct {
	farmers   table[Farmer]
	orders    table[Order]
	payments  table[Payment]
	inventory table[InventoryItem]
	staff     table[Staff]
}

func newMemoryState() memoryState {
	return memoryState{
		farmers:   newTable[Farmer](),
		orders:    newTable[Order](),
		payments:  newTable[Payment](),
		inventory: newTable[InventoryItem](),
		staff:     newTable[Staff](),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		farmers:   s.farmers.clone(cloneFarmer),
		orders:    s.orders.clone(cloneOrder),
		payments:  s.payments.clone(identity[Payment]),
		inventory: s.inventory.clone(identity[InventoryItem]),
		staff:     s.staff.clone(cloneStaff),
	}
}

func (s memoryState) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Farmers:   s.farmers.list(cloneFarmer),
		Orders:    s.orders.list(cloneOrder),
		Payments:  s.payments.list(identity[Payment]),
		Inventory: s.inventory.list(identity[InventoryItem]),
		Staff:     s.staff.list(cloneStaff),
	}
}

func memoryStateFromSnapshot(snap domain.Snapshot) memoryState {
	state := newMemoryState()
	for _, f := range snap.Farmers {
		state.farmers.insert(f.ID, cloneFarmer(f))
		state.farmers.observe(domain.FarmerIDs, f.ID)
	}
	for _, o := range snap.Orders {
		state.orders.insert(o.ID, cloneOrder(o))
		state.orders.observe(domain.OrderIDs, o.ID)
	}
	for _, p := range snap.Payments {
		state.payments.insert(p.ID, p)
		state.payments.observe(domain.PaymentIDs, p.ID)
	}
	for _, item := range snap.Inventory {
		state.inventory.insert(item.ID, item)
		state.inventory.observe(domain.InventoryIDs, item.ID)
	}
	for _, m := range snap.Staff {
		state.staff.insert(m.ID, cloneStaff(m))
		state.staff.observe(domain.StaffIDs, m.ID)
	}
	return state
}

// normalizeSnapshot drops records that cannot be addressed and repairs the
// fields the store guarantees on every record it hands out. Attendance marks
// are kept in date order.
func normalizeSnapshot(snap domain.Snapshot) domain.Snapshot {
	snap.Farmers = dedupe(snap.Farmers, func(f Farmer) string { return f.ID })
	for i := range snap.Farmers {
		if snap.Farmers[i].Crops == nil {
			snap.Farmers[i].Crops = []string{}
		}
	}
	snap.Orders = dedupe(snap.Orders, func(o Order) string { return o.ID })
	snap.Payments = dedupe(snap.Payments, func(p Payment) string { return p.ID })
	snap.Inventory = dedupe(snap.Inventory, func(i InventoryItem) string { return i.ID })
	snap.Staff = dedupe(snap.Staff, func(m Staff) string { return m.ID })
	for i := range snap.Staff {
		if snap.Staff[i].Role != domain.RoleModerator {
			snap.Staff[i].Cluster = ""
		}
		marks := slices.Clone(snap.Staff[i].Attendance)
		slices.SortStableFunc(marks, func(a, b domain.AttendanceMark) int { return a.Date.Compare(b.Date) })
		snap.Staff[i].Attendance = marks
	}
	return snap
}

func dedupe[T any](values []T, key func(T) string) []T {
	out := make([]T, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		id := key(v)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, v)
	}
	return out
}

func identity[T any](v T) T { return v }

func cloneFarmer(f Farmer) Farmer {
	cp := f
	if f.Crops != nil {
		cp.Crops = slices.Clone(f.Crops)
	}
	cp.Notes = slices.Clone(f.Notes)
	if f.LastVisit != nil {
		t := *f.LastVisit
		cp.LastVisit = &t
	}
	return cp
}

func cloneOrder(o Order) Order {
	cp := o
	cp.Items = slices.Clone(o.Items)
	return cp
}

func cloneStaff(m Staff) Staff {
	cp := m
	cp.Attendance = slices.Clone(m.Attendance)
	return cp
}
