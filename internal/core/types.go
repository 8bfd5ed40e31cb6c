package core

import "fpoconsole/pkg/domain"

type (
	Farmer          = domain.Farmer
	Order           = domain.Order
	Payment         = domain.Payment
	InventoryItem   = domain.InventoryItem
	Staff           = domain.Staff
	Snapshot        = domain.Snapshot
	Result          = domain.Result
	Violation       = domain.Violation
	Change          = domain.Change
	Rule            = domain.Rule
	RulesEngine     = domain.RulesEngine
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
)
