// Package domain defines the core entities, value types, and rule
// evaluation primitives shared by the FPO console store and its readers.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and store tables.
const (
	// EntityFarmer identifies a member farmer record.
	EntityFarmer EntityType = "farmer"
	// EntityOrder identifies an input or output order record.
	EntityOrder EntityType = "order"
	// EntityPayment identifies a recorded payment.
	EntityPayment EntityType = "payment"
	// EntityInventoryItem identifies a stocked inventory item.
	EntityInventoryItem EntityType = "inventory_item"
	// EntityStaff identifies a staff member.
	EntityStaff EntityType = "staff"
)

// FarmerStatus captures a member's participation state.
type FarmerStatus string

// Canonical farmer statuses.
const (
	FarmerActive   FarmerStatus = "Active"
	FarmerDormant  FarmerStatus = "Dormant"
	FarmerInactive FarmerStatus = "Inactive"
)

// FarmerStatuses lists farmer statuses in display order.
var FarmerStatuses = []FarmerStatus{FarmerActive, FarmerDormant, FarmerInactive}

// OrderType distinguishes input sales to farmers from produce procurement.
type OrderType string

const (
	OrderInput  OrderType = "Input"
	OrderOutput OrderType = "Output"
)

// OrderStatus enumerates the order pipeline stages.
type OrderStatus string

// Canonical order statuses in pipeline order.
const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderFulfilled  OrderStatus = "Fulfilled"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists pipeline stages in order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderFulfilled, OrderCancelled}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderFulfilled || s == OrderCancelled
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() || s == next {
		return false
	}
	switch next {
	case OrderProcessing:
		return s == OrderPending
	case OrderFulfilled:
		return s == OrderPending || s == OrderProcessing
	case OrderCancelled:
		return true
	default:
		return false
	}
}

// PaymentDirection marks money flowing into or out of the organization.
type PaymentDirection string

const (
	Inbound  PaymentDirection = "Inbound"
	Outbound PaymentDirection = "Outbound"
)

// PaymentStatus captures settlement state.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentPending   PaymentStatus = "Pending"
	PaymentFailed    PaymentStatus = "Failed"
)

// InventoryStatus is always derived from stock and threshold.
type InventoryStatus string

const (
	InStock    InventoryStatus = "In Stock"
	LowStock   InventoryStatus = "Low Stock"
	OutOfStock InventoryStatus = "Out of Stock"
)

// InventoryStatuses lists inventory statuses in display order.
var InventoryStatuses = []InventoryStatus{InStock, LowStock, OutOfStock}

// StaffRole enumerates staff roles.
type StaffRole string

const (
	RoleCEO        StaffRole = "CEO"
	RoleAdmin      StaffRole = "Admin"
	RoleModerator  StaffRole = "Moderator"
	RoleAccountant StaffRole = "Accountant"
	RoleOther      StaffRole = "Other"
)

// StaffStatus marks whether a staff member is currently working.
type StaffStatus string

const (
	StaffActive   StaffStatus = "Active"
	StaffInactive StaffStatus = "Inactive"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Farmer is a member of the producer organization.
type Farmer struct {
	Base
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Village         string          `json:"village"`
	Cluster         string          `json:"cluster"`
	LandSize        decimal.Decimal `json:"land_size"`
	MembershipDate  time.Time       `json:"membership_date"`
	Status          FarmerStatus    `json:"status"`
	OutstandingDues decimal.Decimal `json:"outstanding_dues"`
	ShareCapital    decimal.Decimal `json:"share_capital"`
	Crops           []string        `json:"crops"`
	RiskScore       string          `json:"risk_score"`
	LastVisit       *time.Time      `json:"last_visit,omitempty"`
	Notes           []string        `json:"notes,omitempty"`
}

// HasCrop reports whether the farmer grows crop, compared case-insensitively.
func (f Farmer) HasCrop(crop string) bool {
	for _, c := range f.Crops {
		if strings.EqualFold(c, crop) {
			return true
		}
	}
	return false
}

// OrderItem is a single order line.
type OrderItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is an input sale or output procurement.
type Order struct {
	Base
	Type     OrderType       `json:"type"`
	FarmerID string          `json:"farmer_id,omitempty"`
	Status   OrderStatus     `json:"status"`
	Total    decimal.Decimal `json:"total"`
	Items    []OrderItem     `json:"items,omitempty"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Payment is a categorized money movement.
type Payment struct {
	Base
	Direction  PaymentDirection `json:"direction"`
	Purpose    string           `json:"purpose"`
	Amount     decimal.Decimal  `json:"amount"`
	Status     PaymentStatus    `json:"status"`
	Party      string           `json:"party,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// InventoryItem is a stocked good. Its status is never stored.
type InventoryItem struct {
	Base
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
	AverageCost      decimal.Decimal `json:"average_cost"`
}

// Status derives the stock state from current stock and threshold.
func (i InventoryItem) Status() InventoryStatus {
	switch {
	case i.CurrentStock.Sign() <= 0:
		return OutOfStock
	case i.CurrentStock.LessThanOrEqual(i.MinimumThreshold):
		return LowStock
	default:
		return InStock
	}
}

// StockValue is current stock valued at average cost.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.AverageCost)
}

type inventoryItemAlias InventoryItem

// MarshalJSON emits the derived status alongside the stored fields.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type payload struct {
		inventoryItemAlias
		Status InventoryStatus `json:"status"`
	}
	return json.Marshal(payload{
		inventoryItemAlias: inventoryItemAlias(i),
		Status:             i.Status(),
	})
}

// UnmarshalJSON decodes the stored fields and ignores any supplied status.
func (i *InventoryItem) UnmarshalJSON(data []byte) error {
	var aux inventoryItemAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*i = InventoryItem(aux)
	return nil
}

// AttendanceMark records presence for one calendar day.
type AttendanceMark struct {
	Date    time.Time `json:"date"`
	Present bool      `json:"present"`
}

// Staff is an employee of the organization.
type Staff struct {
	Base
	Name           string           `json:"name"`
	Role           StaffRole        `json:"role"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email"`
	Cluster        string           `json:"cluster,omitempty"`
	Status         StaffStatus      `json:"status"`
	TasksAssigned  int              `json:"tasks_assigned"`
	TasksCompleted int              `json:"tasks_completed"`
	Attendance     []AttendanceMark `json:"attendance,omitempty"`
}

// Snapshot is an internally consistent copy of every collection at one
// instant. Collections keep insertion order.
type Snapshot struct {
	Farmers   []Farmer        `json:"farmers"`
	Orders    []Order         `json:"orders"`
	Payments  []Payment       `json:"payments"`
	Inventory []InventoryItem `json:"inventory"`
	Staff     []Staff         `json:"staff"`
}
