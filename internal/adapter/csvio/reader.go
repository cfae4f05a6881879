// Package csvio implements the record source and account sink boundaries of
// the engine over CSV streams.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

// expected input header, in order.
var inputHeader = []string{"type", "client", "tx", "amount"}

// Reader is a strict typed record source over a CSV stream. Each row either
// becomes a fully-typed domain.Record or a *domain.RowError naming the field
// and reason; the engine never sees partially-typed data.
type Reader struct {
	csv  *csv.Reader
	line int
}

// NewReader creates a record source over r. The first row must be the
// header "type,client,tx,amount".
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Arity is validated per row so a short row yields a recoverable
	// RowError instead of aborting the stream.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return &Reader{csv: cr}
}

// Next returns the next typed record. io.EOF ends the stream; a
// *domain.RowError reports a malformed row and leaves the reader usable.
func (r *Reader) Next() (domain.Record, error) {
	if r.line == 0 {
		if err := r.readHeader(); err != nil {
			return domain.Record{}, err
		}
	}

	row, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return domain.Record{}, io.EOF
		}
		r.line++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return domain.Record{}, &domain.RowError{Line: r.line, Reason: parseErr.Err.Error()}
		}
		return domain.Record{}, fmt.Errorf("read row: %w", err)
	}
	r.line++

	return r.parseRow(row)
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("read header: %w", err)
	}
	r.line = 1

	if len(header) != len(inputHeader) {
		return fmt.Errorf("header has %d columns, expected %d", len(header), len(inputHeader))
	}
	for i, want := range inputHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("unexpected header %q, expected %q", strings.Join(header, ","), strings.Join(inputHeader, ","))
		}
	}
	return nil
}

func (r *Reader) parseRow(row []string) (domain.Record, error) {
	if len(row) != len(inputHeader) {
		return domain.Record{}, &domain.RowError{Line: r.line, Reason: fmt.Sprintf("expected %d columns, got %d", len(inputHeader), len(row))}
	}

	kind, err := parseKind(row[0])
	if err != nil {
		return domain.Record{}, &domain.RowError{Line: r.line, Field: "type", Reason: err.Error()}
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return domain.Record{}, &domain.RowError{Line: r.line, Field: "client", Reason: "invalid unsigned 16-bit integer"}
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return domain.Record{}, &domain.RowError{Line: r.line, Field: "tx", Reason: "invalid unsigned 32-bit integer"}
	}

	amount, err := r.parseAmount(kind, row[3])
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		Kind:     kind,
		ClientID: uint16(client),
		TxID:     uint32(tx),
		Amount:   amount,
	}, nil
}

func (r *Reader) parseAmount(kind domain.RecordKind, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)

	if !kind.Funding() {
		if raw != "" {
			return nil, &domain.RowError{Line: r.line, Field: "amount", Reason: fmt.Sprintf("must be empty for %s records", kind)}
		}
		return nil, nil
	}

	if raw == "" {
		return nil, &domain.RowError{Line: r.line, Field: "amount", Reason: fmt.Sprintf("required for %s records", kind)}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &domain.RowError{Line: r.line, Field: "amount", Reason: "invalid decimal"}
	}
	if amount.Exponent() < -4 {
		return nil, &domain.RowError{Line: r.line, Field: "amount", Reason: "more than 4 fractional digits"}
	}

	return &amount, nil
}

func parseKind(raw string) (domain.RecordKind, error) {
	switch kind := domain.RecordKind(strings.TrimSpace(strings.ToLower(raw))); kind {
	case domain.KindDeposit, domain.KindWithdrawal, domain.KindDispute, domain.KindResolve, domain.KindChargeback:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", raw)
	}
}
