package domain

import "github.com/google/uuid"

// Key returns the NoteKey of the current note.
func (n *Note) Key() NoteKey {
	return NoteKey{
		TxID:  n.TxID,
		Index: n.Index,
	}
}

// IsKeyEqual returns whether the provided NoteKey matches that of the
// current note.
func (n *Note) IsKeyEqual(key NoteKey) bool {
	return n.TxID == key.TxID && n.Index == key.Index
}

// IsSpent returns whether the note is already spent.
func (n *Note) IsSpent() bool {
	return n.Spent
}

// IsConfirmed returns whether the note is already confirmed.
func (n *Note) IsConfirmed() bool {
	return n.Confirmed
}

// IsLocked returns whether the note is in-flight, reserved by some not yet
// broadcasted transaction.
func (n *Note) IsLocked() bool {
	return n.Locked
}

// IsAvailable returns whether the note can be selected for a new spend.
func (n *Note) IsAvailable() bool {
	return n.Confirmed && !n.Spent && !n.Locked
}

// Spend marks the note as spent.
func (n *Note) Spend() {
	n.Spent = true
}

// Confirm marks the note as confirmed.
func (n *Note) Confirm() {
	n.Confirmed = true
}

// Lock marks the note as in-flight under the given transaction id. Locking
// again under the same id is a no-op, locking under a different id fails.
func (n *Note) Lock(txID *uuid.UUID) error {
	if n.IsSpent() {
		return ErrNoteAlreadySpent
	}
	if n.IsLocked() {
		if txID.String() != n.LockedBy.String() {
			return ErrNoteAlreadyLocked
		}
		return nil
	}

	n.Locked = true
	n.LockedBy = txID
	return nil
}

// Unlock brings an in-flight note back to available.
func (n *Note) Unlock() {
	n.Locked = false
	n.LockedBy = nil
}
