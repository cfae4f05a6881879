package domain

import "github.com/shopspring/decimal"

// TxState is the dispute lifecycle state of a transaction.
type TxState string

const (
	TxStateNormal      TxState = "normal"
	TxStateDisputed    TxState = "disputed"
	TxStateResolved    TxState = "resolved"
	TxStateChargedBack TxState = "charged_back"
)

// Transaction is a past deposit or withdrawal eligible to enter the dispute
// lifecycle. ClientID and Amount are fixed at creation; only State changes.
type Transaction struct {
	ClientID uint16
	Amount   decimal.Decimal
	State    TxState
}

// NewTransaction records an accepted deposit or withdrawal.
func NewTransaction(clientID uint16, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ClientID: clientID,
		Amount:   amount,
		State:    TxStateNormal,
	}
}

// Dispute transitions the transaction to disputed. A resolved transaction may
// be disputed again; a charged-back transaction is terminal.
func (t *Transaction) Dispute() error {
	if t.State != TxStateNormal && t.State != TxStateResolved {
		return ErrInvalidTxState
	}
	t.State = TxStateDisputed
	return nil
}

// Resolve transitions a disputed transaction back to a disputable state.
func (t *Transaction) Resolve() error {
	if t.State != TxStateDisputed {
		return ErrInvalidTxState
	}
	t.State = TxStateResolved
	return nil
}

// ChargeBack terminates a disputed transaction. No further transition is
// possible afterwards.
func (t *Transaction) ChargeBack() error {
	if t.State != TxStateDisputed {
		return ErrInvalidTxState
	}
	t.State = TxStateChargedBack
	return nil
}
