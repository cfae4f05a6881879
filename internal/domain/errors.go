package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// Record errors
	ErrMissingAmount     = errors.New("amount is required")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrUnknownRecordKind = errors.New("unknown record kind")

	// Dispute lifecycle errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrClientMismatch      = errors.New("transaction belongs to a different client")
	ErrInvalidTxState      = errors.New("transaction state does not permit this operation")
)

// RowError reports a raw input row that could not be parsed into a Record.
// It is recoverable: the record source stays usable for subsequent rows.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("row %d: field %q: %s", e.Line, e.Field, e.Reason)
}
