package domain

import "github.com/shopspring/decimal"

// RecordKind identifies the type of a transaction record.
type RecordKind string

const (
	KindDeposit    RecordKind = "deposit"
	KindWithdrawal RecordKind = "withdrawal"
	KindDispute    RecordKind = "dispute"
	KindResolve    RecordKind = "resolve"
	KindChargeback RecordKind = "chargeback"
)

// Funding reports whether the record kind moves money into or out of an
// account, as opposed to the dispute lifecycle kinds.
func (k RecordKind) Funding() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Record is a single typed transaction record as delivered by the record
// source. Amount is nil for dispute, resolve and chargeback records.
type Record struct {
	Kind     RecordKind
	ClientID uint16
	TxID     uint32
	Amount   *decimal.Decimal
}
