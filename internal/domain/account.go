package domain

import "github.com/shopspring/decimal"

// Account tracks the funds of a single client. Available funds can be
// withdrawn immediately; held funds are frozen pending dispute resolution.
// The total balance is always derived, never stored.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount creates an account with zero balances.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total returns available + held.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// ValidateDeposit checks if the account can accept a deposit.
func (a *Account) ValidateDeposit() error {
	if a.Locked {
		return ErrAccountLocked
	}
	return nil
}

// ValidateWithdrawal checks if amount can be withdrawn.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to the available balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
}

// Debit removes amount from the available balance.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
}

// HoldFunds moves amount from available to held. The total is unchanged.
func (a *Account) HoldFunds(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// ReleaseFunds moves amount from held back to available. The total is
// unchanged.
func (a *Account) ReleaseFunds(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// ApplyChargeback removes amount from held entirely and locks the account.
// The total decreases.
func (a *Account) ApplyChargeback(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}
