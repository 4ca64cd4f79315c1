package domain

import (
	"github.com/google/uuid"
)

// NoteKey is the stable composite identifier of a Note, the transaction that
// created it and the output position inside it.
type NoteKey struct {
	TxID  string
	Index uint32
}

// Note is a spendable value record owned by an account address. Its state
// machine is the central invariant of the wallet:
// available -> in-flight (Lock), in-flight -> spent (Spend) once the
// reserving transaction broadcast, in-flight -> available (Unlock) when it
// failed. A note is never in-flight under two transaction ids at once.
type Note struct {
	TxID      string
	Index     uint32
	Value     uint64
	Owner     string
	Origin    string
	Confirmed bool
	Spent     bool
	Locked    bool
	LockedBy  *uuid.UUID
}

// NewNote returns a confirmed, unspent, unlocked note
func NewNote(txID string, index uint32, value uint64, owner, origin string) Note {
	return Note{
		TxID:      txID,
		Index:     index,
		Value:     value,
		Owner:     owner,
		Origin:    origin,
		Confirmed: true,
	}
}
