// Package memory provides the process-local transactional store that owns
// every FPO entity collection.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fpoconsole/pkg/domain"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain store interface.
var _ domain.Store = (*Store)(nil)

type (
	// Farmer aliases domain.Farmer for in-memory persistence operations.
	Farmer = domain.Farmer
	// Order aliases domain.Order.
	Order = domain.Order
	// Payment aliases domain.Payment.
	Payment = domain.Payment
	// InventoryItem aliases domain.InventoryItem.
	InventoryItem = domain.InventoryItem
	// Staff aliases domain.Staff.
	Staff = domain.Staff
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// Store provides an in-memory transactional store for the FPO domain. Writes
// are serialized; readers receive cloned snapshots.
type Store struct {
	mu       sync.RWMutex
	state    memoryState
	engine   *RulesEngine
	nowFn    func() time.Time
	onCommit CommitHook
}

// CommitHook receives the state a transaction is about to commit. An error
// abandons the commit and leaves the previous state in place.
type CommitHook func(ctx context.Context, next domain.Snapshot) error

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithCommitHook runs hook under the write lock before each commit is applied.
func WithCommitHook(hook CommitHook) Option {
	return func(s *Store) {
		s.onCommit = hook
	}
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// Snapshot returns a deep copy of every collection in insertion order.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

// ImportState replaces the store state with the provided snapshot. Records
// without an identifier or with a duplicate identifier are dropped, and every
// sequence resumes past the highest identifier it has seen. The imported state
// is evaluated by the rules engine first; a blocking violation rejects the
// whole snapshot and keeps the current state.
func (s *Store) ImportState(ctx context.Context, snapshot domain.Snapshot) error {
	next := memoryStateFromSnapshot(normalizeSnapshot(snapshot))
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, newTransactionView(&next), nil)
		if err != nil {
			return fmt.Errorf("import state: %w", err)
		}
		if res.HasBlocking() {
			return fmt.Errorf("import state: %w", domain.RuleViolationError{Result: res})
		}
	}
	s.state = next
	return nil
}

// RunInTransaction applies fn to a private copy of the state, evaluates rules
// over the result, and commits only when fn succeeds and no rule blocks.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		id:    uuid.NewString(),
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	if s.onCommit != nil {
		if err := s.onCommit(ctx, tx.state.snapshot()); err != nil {
			return result, err
		}
	}
	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(newTransactionView(&snapshot))
}

type transaction struct {
	id      string
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) ID() string { return tx.id }

func (tx *transaction) recordChange(change Change) {
	change.TxID = tx.id
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) CreateFarmer(f Farmer) (Farmer, error) {
	if f.ID == "" {
		f.ID = tx.state.farmers.nextID(domain.FarmerIDs)
	}
	if tx.state.farmers.has(f.ID) {
		return Farmer{}, fmt.Errorf("farmer %q already exists", f.ID)
	}
	f.CreatedAt = tx.now
	f.UpdatedAt = tx.now
	if f.Crops == nil {
		f.Crops = []string{}
	}
	tx.state.farmers.insert(f.ID, cloneFarmer(f))
	tx.recordChange(Change{Entity: domain.EntityFarmer, Action: domain.ActionCreate, After: cloneFarmer(f)})
	return cloneFarmer(f), nil
}

func (tx *transaction) UpdateFarmer(id string, mutator func(*Farmer) error) (Farmer, error) {
	current, ok := tx.state.farmers.get(id)
	if !ok {
		return Farmer{}, domain.NotFoundError{Entity: domain.EntityFarmer, ID: id}
	}
	before := cloneFarmer(current)
	current = cloneFarmer(current)
	if err := mutator(&current); err != nil {
		return Farmer{}, err
	}
	if current.ID != id {
		return Farmer{}, fmt.Errorf("farmer %q: identifier is immutable", id)
	}
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.farmers.replace(id, cloneFarmer(current))
	tx.recordChange(Change{Entity: domain.EntityFarmer, Action: domain.ActionUpdate, Before: before, After: cloneFarmer(current)})
	return cloneFarmer(current), nil
}

func (tx *transaction) CreateOrder(o Order) (Order, error) {
	if o.ID == "" {
		o.ID = tx.state.orders.nextID(domain.OrderIDs)
	}
	if tx.state.orders.has(o.ID) {
		return Order{}, fmt.Errorf("order %q already exists", o.ID)
	}
	o.CreatedAt = tx.now
	o.UpdatedAt = tx.now
	if o.PlacedAt.IsZero() {
		o.PlacedAt = tx.now
	}
	tx.state.orders.insert(o.ID, cloneOrder(o))
	tx.recordChange(Change{Entity: domain.EntityOrder, Action: domain.ActionCreate, After: cloneOrder(o)})
	return cloneOrder(o), nil
}

func (tx *transaction) UpdateOrder(id string, mutator func(*Order) error) (Order, error) {
	current, ok := tx.state.orders.get(id)
	if !ok {
		return Order{}, domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
	}
	before := cloneOrder(current)
	current = cloneOrder(current)
	if err := mutator(&current); err != nil {
		return Order{}, err
	}
	if current.ID != id {
		return Order{}, fmt.Errorf("order %q: identifier is immutable", id)
	}
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.orders.replace(id, cloneOrder(current))
	tx.recordChange(Change{Entity: domain.EntityOrder, Action: domain.ActionUpdate, Before: before, After: cloneOrder(current)})
	return cloneOrder(current), nil
}

func (tx *transaction) CreatePayment(p Payment) (Payment, error) {
	if p.ID == "" {
		p.ID = tx.state.payments.nextID(domain.PaymentIDs)
	}
	if tx.state.payments.has(p.ID) {
		return Payment{}, fmt.Errorf("payment %q already exists", p.ID)
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	if p.RecordedAt.IsZero() {
		p.RecordedAt = tx.now
	}
	tx.state.payments.insert(p.ID, p)
	tx.recordChange(Change{Entity: domain.EntityPayment, Action: domain.ActionCreate, After: p})
	return p, nil
}

func (tx *transaction) UpdatePayment(id string, mutator func(*Payment) error) (Payment, error) {
	current, ok := tx.state.payments.get(id)
	if !ok {
		return Payment{}, domain.NotFoundError{Entity: domain.EntityPayment, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Payment{}, err
	}
	if current.ID != id {
		return Payment{}, fmt.Errorf("payment %q: identifier is immutable", id)
	}
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.payments.replace(id, current)
	tx.recordChange(Change{Entity: domain.EntityPayment, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

func (tx *transaction) CreateInventoryItem(item InventoryItem) (InventoryItem, error) {
	if item.ID == "" {
		item.ID = tx.state.inventory.nextID(domain.InventoryIDs)
	}
	if tx.state.inventory.has(item.ID) {
		return InventoryItem{}, fmt.Errorf("inventory item %q already exists", item.ID)
	}
	item.CreatedAt = tx.now
	item.UpdatedAt = tx.now
	tx.state.inventory.insert(item.ID, item)
	tx.recordChange(Change{Entity: domain.EntityInventoryItem, Action: domain.ActionCreate, After: item})
	return item, nil
}

func (tx *transaction) UpdateInventoryItem(id string, mutator func(*InventoryItem) error) (InventoryItem, error) {
	current, ok := tx.state.inventory.get(id)
	if !ok {
		return InventoryItem{}, domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return InventoryItem{}, err
	}
	if current.ID != id {
		return InventoryItem{}, fmt.Errorf("inventory item %q: identifier is immutable", id)
	}
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.inventory.replace(id, current)
	tx.recordChange(Change{Entity: domain.EntityInventoryItem, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

func (tx *transaction) CreateStaff(m Staff) (Staff, error) {
	if m.ID == "" {
		m.ID = tx.state.staff.nextID(domain.StaffIDs)
	}
	if tx.state.staff.has(m.ID) {
		return Staff{}, fmt.Errorf("staff %q already exists", m.ID)
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	tx.state.staff.insert(m.ID, cloneStaff(m))
	tx.recordChange(Change{Entity: domain.EntityStaff, Action: domain.ActionCreate, After: cloneStaff(m)})
	return cloneStaff(m), nil
}

func (tx *transaction) UpdateStaff(id string, mutator func(*Staff) error) (Staff, error) {
	current, ok := tx.state.staff.get(id)
	if !ok {
		return Staff{}, domain.NotFoundError{Entity: domain.EntityStaff, ID: id}
	}
	before := cloneStaff(current)
	current = cloneStaff(current)
	if err := mutator(&current); err != nil {
		return Staff{}, err
	}
	if current.ID != id {
		return Staff{}, fmt.Errorf("staff %q: identifier is immutable", id)
	}
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.staff.replace(id, cloneStaff(current))
	tx.recordChange(Change{Entity: domain.EntityStaff, Action: domain.ActionUpdate, Before: before, After: cloneStaff(current)})
	return cloneStaff(current), nil
}

// transactionView exposes a read-only snapshot of the transactional state to rules.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) ListFarmers() []Farmer { return v.state.farmers.list(cloneFarmer) }

func (v transactionView) ListOrders() []Order { return v.state.orders.list(cloneOrder) }

func (v transactionView) ListPayments() []Payment { return v.state.payments.list(identity[Payment]) }

func (v transactionView) ListInventory() []InventoryItem {
	return v.state.inventory.list(identity[InventoryItem])
}

func (v transactionView) ListStaff() []Staff { return v.state.staff.list(cloneStaff) }

func (v transactionView) FindFarmer(id string) (Farmer, bool) {
	f, ok := v.state.farmers.get(id)
	return cloneFarmer(f), ok
}

func (v transactionView) FindOrder(id string) (Order, bool) {
	o, ok := v.state.orders.get(id)
	return cloneOrder(o), ok
}

func (v transactionView) FindPayment(id string) (Payment, bool) {
	return v.state.payments.get(id)
}

func (v transactionView) FindInventoryItem(id string) (InventoryItem, bool) {
	return v.state.inventory.get(id)
}

func (v transactionView) FindStaff(id string) (Staff, bool) {
	m, ok := v.state.staff.get(id)
	return cloneStaff(m), ok
}
