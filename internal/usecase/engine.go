package usecase

import (
	"errors"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// Skip reasons reported through logs and metrics.
const (
	SkipMissingAmount      = "missing_amount"
	SkipNegativeAmount     = "negative_amount"
	SkipAccountLocked      = "account_locked"
	SkipInsufficientFunds  = "insufficient_funds"
	SkipUnknownTransaction = "unknown_transaction"
	SkipClientMismatch     = "client_mismatch"
	SkipInvalidState       = "invalid_state"
	SkipUnknownKind        = "unknown_kind"
)

// Stats summarizes one engine run.
type Stats struct {
	Processed uint64
	Applied   uint64
	Malformed uint64
	Skipped   map[string]uint64
}

// Engine folds transaction records into per-client account state. It owns
// both the account mapping and the disputable-transaction history for the
// duration of one run; records are applied strictly in arrival order.
//
// Apply never returns an error: malformed or inapplicable records are a
// normal occurrence in untrusted input, so every rejection is a silent skip
// that leaves all state untouched.
type Engine struct {
	accounts     map[uint16]*domain.Account
	transactions map[uint32]*domain.Transaction
	clientOrder  []uint16

	log     zerolog.Logger
	metrics *metrics.Metrics
	stats   Stats
}

// NewEngine creates an empty engine. Each run is tagged with a ULID for log
// correlation.
func NewEngine(log zerolog.Logger, m *metrics.Metrics) *Engine {
	runID := ulid.Make().String()

	return &Engine{
		accounts:     make(map[uint16]*domain.Account),
		transactions: make(map[uint32]*domain.Transaction),
		log:          log.With().Str("run_id", runID).Logger(),
		metrics:      m,
		stats:        Stats{Skipped: make(map[string]uint64)},
	}
}

// Run folds the whole record stream. Rows rejected at the record source
// boundary are counted and logged but never abort the run; any other source
// error does.
func (e *Engine) Run(src RecordSource) error {
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var rowErr *domain.RowError
		if errors.As(err, &rowErr) {
			e.stats.Malformed++
			if e.metrics != nil {
				e.metrics.RowsMalformed.Inc()
			}
			e.log.Warn().Int("line", rowErr.Line).Str("error", rowErr.Error()).
				Msg("malformed row skipped")
			continue
		}
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}

		e.Apply(rec)
	}

	e.log.Info().
		Uint64("processed", e.stats.Processed).
		Uint64("applied", e.stats.Applied).
		Uint64("malformed", e.stats.Malformed).
		Int("accounts", len(e.accounts)).
		Msg("record stream exhausted")

	return nil
}

// Apply applies one record to the ledger. Side effect only; an inapplicable
// record is skipped without mutating any account or transaction.
func (e *Engine) Apply(rec domain.Record) {
	e.stats.Processed++

	var err error
	switch rec.Kind {
	case domain.KindDeposit:
		err = e.applyDeposit(rec)
	case domain.KindWithdrawal:
		err = e.applyWithdrawal(rec)
	case domain.KindDispute:
		err = e.applyDispute(rec)
	case domain.KindResolve:
		err = e.applyResolve(rec)
	case domain.KindChargeback:
		err = e.applyChargeback(rec)
	default:
		err = domain.ErrUnknownRecordKind
	}

	if err != nil {
		e.skip(rec, err)
		return
	}

	e.stats.Applied++
	if e.metrics != nil {
		e.metrics.RecordsApplied.WithLabelValues(string(rec.Kind)).Inc()
	}
}

// Stats returns a copy of the run counters.
func (e *Engine) Stats() Stats {
	out := e.stats
	out.Skipped = make(map[string]uint64, len(e.stats.Skipped))
	for reason, n := range e.stats.Skipped {
		out.Skipped[reason] = n
	}
	return out
}

func (e *Engine) applyDeposit(rec domain.Record) error {
	amount, err := fundingAmount(rec)
	if err != nil {
		return err
	}

	if acc, ok := e.accounts[rec.ClientID]; ok {
		if err := acc.ValidateDeposit(); err != nil {
			return err
		}
	}

	acc := e.account(rec.ClientID)
	e.transactions[rec.TxID] = domain.NewTransaction(rec.ClientID, amount)
	acc.Credit(amount)

	return nil
}

func (e *Engine) applyWithdrawal(rec domain.Record) error {
	amount, err := fundingAmount(rec)
	if err != nil {
		return err
	}

	acc := e.account(rec.ClientID)
	if err := acc.ValidateWithdrawal(amount); err != nil {
		return err
	}

	acc.Debit(amount)
	e.transactions[rec.TxID] = domain.NewTransaction(rec.ClientID, amount)

	return nil
}

func (e *Engine) applyDispute(rec domain.Record) error {
	tx, err := e.transaction(rec)
	if err != nil {
		return err
	}

	if err := tx.Dispute(); err != nil {
		return err
	}

	e.accounts[rec.ClientID].HoldFunds(tx.Amount)
	if e.metrics != nil {
		e.metrics.DisputesOpened.Inc()
	}

	return nil
}

func (e *Engine) applyResolve(rec domain.Record) error {
	tx, err := e.transaction(rec)
	if err != nil {
		return err
	}

	if err := tx.Resolve(); err != nil {
		return err
	}

	e.accounts[rec.ClientID].ReleaseFunds(tx.Amount)
	if e.metrics != nil {
		e.metrics.DisputesResolved.Inc()
	}

	return nil
}

func (e *Engine) applyChargeback(rec domain.Record) error {
	tx, err := e.transaction(rec)
	if err != nil {
		return err
	}

	if err := tx.ChargeBack(); err != nil {
		return err
	}

	e.accounts[rec.ClientID].ApplyChargeback(tx.Amount)
	if e.metrics != nil {
		e.metrics.ChargebacksApplied.Inc()
		e.metrics.AccountsLocked.Inc()
	}
	e.log.Info().
		Uint16("client", rec.ClientID).
		Uint32("tx", rec.TxID).
		Msg("chargeback applied, account locked")

	return nil
}

// account returns the client's account, creating it with zero balances on
// first reference.
func (e *Engine) account(clientID uint16) *domain.Account {
	acc, ok := e.accounts[clientID]
	if !ok {
		acc = domain.NewAccount(clientID)
		e.accounts[clientID] = acc
		e.clientOrder = append(e.clientOrder, clientID)
		if e.metrics != nil {
			e.metrics.AccountsCreated.Inc()
		}
	}
	return acc
}

// transaction looks up the disputable transaction targeted by a dispute,
// resolve or chargeback record. No account is ever created on this path.
func (e *Engine) transaction(rec domain.Record) (*domain.Transaction, error) {
	tx, ok := e.transactions[rec.TxID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if tx.ClientID != rec.ClientID {
		return nil, domain.ErrClientMismatch
	}
	return tx, nil
}

func fundingAmount(rec domain.Record) (decimal.Decimal, error) {
	if rec.Amount == nil {
		return decimal.Decimal{}, domain.ErrMissingAmount
	}
	if rec.Amount.IsNegative() {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}
	return *rec.Amount, nil
}

func (e *Engine) skip(rec domain.Record, err error) {
	reason := skipReason(err)
	e.stats.Skipped[reason]++
	if e.metrics != nil {
		e.metrics.RecordsSkipped.WithLabelValues(reason).Inc()
	}
	e.log.Debug().
		Str("kind", string(rec.Kind)).
		Uint16("client", rec.ClientID).
		Uint32("tx", rec.TxID).
		Str("reason", reason).
		Msg("record skipped")
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingAmount):
		return SkipMissingAmount
	case errors.Is(err, domain.ErrNegativeAmount):
		return SkipNegativeAmount
	case errors.Is(err, domain.ErrAccountLocked):
		return SkipAccountLocked
	case errors.Is(err, domain.ErrInsufficientFunds):
		return SkipInsufficientFunds
	case errors.Is(err, domain.ErrTransactionNotFound):
		return SkipUnknownTransaction
	case errors.Is(err, domain.ErrClientMismatch):
		return SkipClientMismatch
	case errors.Is(err, domain.ErrInvalidTxState):
		return SkipInvalidState
	default:
		return SkipUnknownKind
	}
}
