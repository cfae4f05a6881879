package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

func readAll(t *testing.T, input string) ([]domain.Record, []*domain.RowError) {
	t.Helper()

	r := NewReader(strings.NewReader(input))
	var records []domain.Record
	var rowErrs []*domain.RowError
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, rowErrs
		}
		var rowErr *domain.RowError
		if errors.As(err, &rowErr) {
			rowErrs = append(rowErrs, rowErr)
			continue
		}
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		records = append(records, rec)
	}
}

func TestReader_WellFormedStream(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.5\n" +
		"deposit, 2, 2, 2.0001\n" +
		"withdrawal,1,3,0.5\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	records, rowErrs := readAll(t, input)

	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	first := records[0]
	if first.Kind != domain.KindDeposit || first.ClientID != 1 || first.TxID != 1 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Amount == nil || !first.Amount.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("expected amount 1.5, got %v", first.Amount)
	}

	// Whitespace around fields is trimmed.
	if records[1].ClientID != 2 || !records[1].Amount.Equal(decimal.RequireFromString("2.0001")) {
		t.Fatalf("expected trimmed fields, got %+v", records[1])
	}

	for _, rec := range records[3:] {
		if rec.Amount != nil {
			t.Fatalf("expected nil amount for %s record, got %s", rec.Kind, rec.Amount)
		}
	}
}

func TestReader_MalformedRows(t *testing.T) {
	tests := []struct {
		name      string
		row       string
		wantField string
	}{
		{"unknown type", "transfer,1,1,1.0", "type"},
		{"non-integer client", "deposit,abc,1,1.0", "client"},
		{"client out of range", "deposit,70000,1,1.0", "client"},
		{"negative client", "deposit,-1,1,1.0", "client"},
		{"non-integer tx", "deposit,1,xyz,1.0", "tx"},
		{"tx out of range", "deposit,1,4294967296,1.0", "tx"},
		{"missing amount on deposit", "deposit,1,1,", "amount"},
		{"missing amount on withdrawal", "withdrawal,1,1,", "amount"},
		{"invalid decimal", "deposit,1,1,12.x", "amount"},
		{"too many decimal places", "deposit,1,1,1.00001", "amount"},
		{"amount on dispute", "dispute,1,1,3.0", "amount"},
		{"too few columns", "deposit,1,1", ""},
		{"too many columns", "deposit,1,1,1.0,extra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "type,client,tx,amount\n" + tt.row + "\n"
			records, rowErrs := readAll(t, input)

			if len(records) != 0 {
				t.Fatalf("expected no records, got %+v", records)
			}
			if len(rowErrs) != 1 {
				t.Fatalf("expected one row error, got %v", rowErrs)
			}
			if rowErrs[0].Field != tt.wantField {
				t.Fatalf("expected field %q, got %q (%v)", tt.wantField, rowErrs[0].Field, rowErrs[0])
			}
			if rowErrs[0].Line != 2 {
				t.Fatalf("expected line 2, got %d", rowErrs[0].Line)
			}
		})
	}
}

func TestReader_RecoversAfterBadRow(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,oops,2,1.0\n" +
		"deposit,2,3,2.0\n"

	records, rowErrs := readAll(t, input)

	if len(records) != 2 {
		t.Fatalf("expected reader to continue past the bad row, got %d records", len(records))
	}
	if len(rowErrs) != 1 || rowErrs[0].Line != 3 {
		t.Fatalf("expected one row error on line 3, got %v", rowErrs)
	}
}

func TestReader_HeaderValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong column names", "kind,client,tx,amount\ndeposit,1,1,1.0\n"},
		{"wrong arity", "type,client,tx\ndeposit,1,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			_, err := r.Next()
			if err == nil || errors.Is(err, io.EOF) {
				t.Fatalf("expected hard header error, got %v", err)
			}
			var rowErr *domain.RowError
			if errors.As(err, &rowErr) {
				t.Fatalf("header mismatch must not be a recoverable row error, got %v", rowErr)
			}
		})
	}
}

func TestReader_HeaderCaseAndSpacing(t *testing.T) {
	input := "Type, Client, TX, Amount\ndeposit,1,1,1.0\n"
	records, rowErrs := readAll(t, input)

	if len(rowErrs) != 0 || len(records) != 1 {
		t.Fatalf("expected lenient header matching, got records=%d errs=%v", len(records), rowErrs)
	}
}

func TestReader_EmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on empty input, got %v", err)
	}
}

func TestReader_NegativeAmountPassesThrough(t *testing.T) {
	// Negative amounts are well-typed; rejecting them is engine policy.
	input := "type,client,tx,amount\ndeposit,1,1,-2.5\n"
	records, rowErrs := readAll(t, input)

	if len(rowErrs) != 0 || len(records) != 1 {
		t.Fatalf("expected one record, got records=%d errs=%v", len(records), rowErrs)
	}
	if !records[0].Amount.IsNegative() {
		t.Fatalf("expected negative amount to survive parsing, got %s", records[0].Amount)
	}
}
