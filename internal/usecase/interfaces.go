package usecase

import "github.com/iho/payengine/internal/domain"

// RecordSource yields typed transaction records in arrival order. Next
// returns io.EOF when the stream is exhausted. A *domain.RowError marks a row
// that could not be typed; the source stays usable for subsequent rows. Any
// other error is fatal to the run.
type RecordSource interface {
	Next() (domain.Record, error)
}

// SnapshotWriter emits the final per-client account snapshots.
type SnapshotWriter interface {
	Write(snapshots []domain.Snapshot) error
}
