package domain

import "github.com/shopspring/decimal"

// Snapshot is the final state of one client account after the record stream
// has been exhausted. Total is computed once at projection time.
type Snapshot struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
