package core

import "fpoconsole/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewModeratorClusterRule())
	engine.Register(NewStaffTaskBalanceRule())
	engine.Register(NewNonNegativeValuesRule())
	engine.Register(NewInventoryLowStockRule())
	return engine
}
