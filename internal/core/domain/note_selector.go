package domain

import (
	"fmt"
	"sort"
)

// SelectNotesForAmount performs a coin selection over the given notes and
// returns a subset covering the target amount plus the change left over.
// The strategy is deterministic greedy largest-first: notes are sorted by
// value descending and accumulated until the running total covers the
// target. It is neither minimal-count nor privacy optimal; the simplicity
// and determinism of the selection are the point.
func SelectNotesForAmount(notes []Note, target uint64) ([]Note, uint64, error) {
	if target <= 0 {
		return nil, 0, ErrInvalidAmount
	}

	candidates := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.IsAvailable() {
			candidates = append(candidates, n)
		}
	}
	// Equal values fall back to the note key so the order never depends on
	// how the caller assembled the slice.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Value != candidates[j].Value {
			return candidates[i].Value > candidates[j].Value
		}
		if candidates[i].TxID != candidates[j].TxID {
			return candidates[i].TxID < candidates[j].TxID
		}
		return candidates[i].Index < candidates[j].Index
	})

	selected := make([]Note, 0, len(candidates))
	total := uint64(0)
	for _, n := range candidates {
		selected = append(selected, n)
		total += n.Value
		if total >= target {
			return selected, total - target, nil
		}
	}

	return nil, 0, fmt.Errorf(
		"%w: available %d, target %d", ErrInsufficientFunds, total, target,
	)
}

// SelectNotesForSweep returns every available note along with their total
// value. Used when the whole balance is sent and no change comes back.
func SelectNotesForSweep(notes []Note) ([]Note, uint64) {
	selected := make([]Note, 0, len(notes))
	total := uint64(0)
	for _, n := range notes {
		if n.IsAvailable() {
			selected = append(selected, n)
			total += n.Value
		}
	}
	return selected, total
}
