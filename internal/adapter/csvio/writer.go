package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer emits account snapshots as CSV, one row per client, decimals
// formatted to exactly 4 fractional digits.
type Writer struct {
	out io.Writer
}

// NewWriter creates an account sink writing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write writes the header followed by one row per snapshot.
func (w *Writer) Write(snapshots []domain.Snapshot) error {
	cw := csv.NewWriter(w.out)

	if err := cw.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, snap := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(snap.ClientID), 10),
			snap.Available.StringFixed(4),
			snap.Held.StringFixed(4),
			snap.Total.StringFixed(4),
			strconv.FormatBool(snap.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write snapshot for client %d: %w", snap.ClientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
