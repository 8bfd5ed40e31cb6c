package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FarmerDraft is a farmer payload awaiting identifier assignment.
type FarmerDraft struct {
	Name            string          `json:"name" validate:"required"`
	Phone           string          `json:"phone" validate:"required"`
	Village         string          `json:"village"`
	Cluster         string          `json:"cluster"`
	LandSize        decimal.Decimal `json:"land_size" validate:"gte=0"`
	MembershipDate  time.Time       `json:"membership_date"`
	Status          FarmerStatus    `json:"status" validate:"omitempty,oneof=Active Dormant Inactive"`
	OutstandingDues decimal.Decimal `json:"outstanding_dues" validate:"gte=0"`
	ShareCapital    decimal.Decimal `json:"share_capital" validate:"gte=0"`
	Crops           []string        `json:"crops" validate:"dive,required"`
	RiskScore       string          `json:"risk_score"`
	LastVisit       *time.Time      `json:"last_visit,omitempty"`
}

// StaffDraft is a staff payload awaiting identifier assignment. Cluster is
// only meaningful for moderators.
type StaffDraft struct {
	Name           string      `json:"name" validate:"required"`
	Role           StaffRole   `json:"role" validate:"required,oneof=CEO Admin Moderator Accountant Other"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email" validate:"omitempty,email"`
	Cluster        string      `json:"cluster,omitempty" validate:"required_if=Role Moderator"`
	Status         StaffStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
	TasksAssigned  int         `json:"tasks_assigned" validate:"gte=0"`
	TasksCompleted int         `json:"tasks_completed" validate:"gte=0,ltefield=TasksAssigned"`
}

// PaymentDraft is a payment awaiting identifier assignment.
type PaymentDraft struct {
	Direction  PaymentDirection `json:"direction" validate:"required,oneof=Inbound Outbound"`
	Purpose    string           `json:"purpose" validate:"required"`
	Amount     decimal.Decimal  `json:"amount" validate:"gte=0"`
	Status     PaymentStatus    `json:"status" validate:"required,oneof=Completed Pending Failed"`
	Party      string           `json:"party,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// InventoryDraft is an inventory item awaiting identifier assignment.
type InventoryDraft struct {
	Name             string          `json:"name" validate:"required"`
	Unit             string          `json:"unit" validate:"required"`
	CurrentStock     decimal.Decimal `json:"current_stock" validate:"gte=0"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold" validate:"gte=0"`
	AverageCost      decimal.Decimal `json:"average_cost" validate:"gte=0"`
}

// OrderItemDraft is one line of an order draft.
type OrderItemDraft struct {
	Name      string          `json:"name" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// OrderDraft is an order awaiting identifier assignment. A zero Total is
// computed from the items.
type OrderDraft struct {
	Type     OrderType        `json:"type" validate:"required,oneof=Input Output"`
	FarmerID string           `json:"farmer_id,omitempty"`
	Status   OrderStatus      `json:"status" validate:"omitempty,oneof=Pending Processing Fulfilled Cancelled"`
	Total    decimal.Decimal  `json:"total" validate:"gte=0"`
	Items    []OrderItemDraft `json:"items,omitempty" validate:"dive"`
	PlacedAt time.Time        `json:"placed_at"`
}
