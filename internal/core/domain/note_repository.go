package domain

import (
	"context"

	"github.com/google/uuid"
)

// NoteRepository is the durable per-account ledger of notes. Implementations
// must be safe for concurrent use; the in-flight exclusivity across
// concurrent sends is additionally guarded by the per-account lock in the
// application layer.
type NoteRepository interface {
	// AddNotes upserts the given notes. Notes already known keep their local
	// lifecycle state (locked/spent), only chain-side fields are refreshed.
	AddNotes(ctx context.Context, notes []Note) error
	GetAllNotes(ctx context.Context) ([]Note, error)
	GetNotesForAddress(ctx context.Context, addr string) ([]Note, error)
	// GetAvailableNotesForAddress excludes in-flight and spent notes.
	GetAvailableNotesForAddress(ctx context.Context, addr string) ([]Note, error)
	// GetLockedNotesForAddress returns the in-flight notes of the address.
	GetLockedNotesForAddress(ctx context.Context, addr string) ([]Note, error)
	GetNoteForKey(ctx context.Context, key NoteKey) (*Note, error)
	// LockNotes reserves all the given notes under txID, failing atomically
	// with ErrNoteAlreadyLocked if any of them is reserved by another id.
	LockNotes(ctx context.Context, keys []NoteKey, txID uuid.UUID) error
	UnlockNotes(ctx context.Context, keys []NoteKey) error
	SpendNotes(ctx context.Context, keys []NoteKey) error
	ConfirmNotes(ctx context.Context, keys []NoteKey) error
	// GetAvailableBalance returns the sum of available note values for the
	// address.
	GetAvailableBalance(ctx context.Context, addr string) (uint64, error)
	// Reset erases all persisted notes. Only used by the wallet reset flow.
	Reset(ctx context.Context) error
}
