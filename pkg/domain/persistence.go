package domain

import "context"

// Transaction exposes the mutations a store must support within an atomic
// scope. Nothing is visible to readers until the transaction commits.
type Transaction interface {
	ID() string
	Snapshot() TransactionView
	CreateFarmer(Farmer) (Farmer, error)
	UpdateFarmer(id string, mutator func(*Farmer) error) (Farmer, error)
	CreateOrder(Order) (Order, error)
	UpdateOrder(id string, mutator func(*Order) error) (Order, error)
	CreatePayment(Payment) (Payment, error)
	UpdatePayment(id string, mutator func(*Payment) error) (Payment, error)
	CreateInventoryItem(InventoryItem) (InventoryItem, error)
	UpdateInventoryItem(id string, mutator func(*InventoryItem) error) (InventoryItem, error)
	CreateStaff(Staff) (Staff, error)
	UpdateStaff(id string, mutator func(*Staff) error) (Staff, error)
}

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	RuleView
}

// Store is the abstraction consumed by the service layer.
type Store interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	Snapshot() Snapshot
	ImportState(ctx context.Context, snap Snapshot) error
	RulesEngine() *RulesEngine
}
