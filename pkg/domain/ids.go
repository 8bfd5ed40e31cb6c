package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IDScheme renders human-legible identifiers from a running sequence.
type IDScheme struct {
	Prefix string
	Width  int
}

// Identifier schemes per collection.
var (
	FarmerIDs    = IDScheme{Prefix: "FRM-", Width: 4}
	StaffIDs     = IDScheme{Prefix: "STF-", Width: 3}
	OrderIDs     = IDScheme{Prefix: "ORD-", Width: 4}
	PaymentIDs   = IDScheme{Prefix: "PAY-", Width: 5}
	InventoryIDs = IDScheme{Prefix: "INV-", Width: 3}
)

// SchemeFor returns the identifier scheme for an entity type.
func SchemeFor(entity EntityType) IDScheme {
	switch entity {
	case EntityFarmer:
		return FarmerIDs
	case EntityStaff:
		return StaffIDs
	case EntityOrder:
		return OrderIDs
	case EntityPayment:
		return PaymentIDs
	case EntityInventoryItem:
		return InventoryIDs
	default:
		return IDScheme{Prefix: strings.ToUpper(string(entity)) + "-", Width: 4}
	}
}

// Format renders the identifier for sequence n (1-based).
func (s IDScheme) Format(n uint64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}

// Sequence extracts the numeric sequence from an identifier produced by this
// scheme. It reports false for foreign identifiers.
func (s IDScheme) Sequence(id string) (uint64, bool) {
	rest, ok := strings.CutPrefix(id, s.Prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
