package usecase

import "github.com/iho/payengine/internal/domain"

// Snapshots projects the final account mapping into one snapshot per client,
// in first-seen-client order so output is reproducible. It may be called any
// number of times after the stream ends.
func (e *Engine) Snapshots() []domain.Snapshot {
	snapshots := make([]domain.Snapshot, 0, len(e.clientOrder))
	for _, clientID := range e.clientOrder {
		acc := e.accounts[clientID]
		snapshots = append(snapshots, domain.Snapshot{
			ClientID:  acc.ClientID,
			Available: acc.Available,
			Held:      acc.Held,
			Total:     acc.Total(),
			Locked:    acc.Locked,
		})
	}
	return snapshots
}
