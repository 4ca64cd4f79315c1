package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

type noteRepositoryImpl struct {
	store *badgerhold.Store
}

// NewNoteRepositoryImpl returns a badger-backed NoteRepository
func NewNoteRepositoryImpl(store *badgerhold.Store) domain.NoteRepository {
	return &noteRepositoryImpl{store}
}

func (r *noteRepositoryImpl) AddNotes(
	ctx context.Context, notes []domain.Note,
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		for _, note := range notes {
			key := noteStoreKey(note.Key())

			var existing domain.Note
			err := r.store.TxGet(tx, key, &existing)
			if err != nil && err != badgerhold.ErrNotFound {
				return err
			}
			if err == nil {
				// Chain-side fields only, local lifecycle state survives.
				existing.Value = note.Value
				existing.Origin = note.Origin
				existing.Confirmed = note.Confirmed
				if err := r.store.TxUpdate(tx, key, existing); err != nil {
					return err
				}
				continue
			}
			if err := r.store.TxInsert(tx, key, note); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *noteRepositoryImpl) GetAllNotes(ctx context.Context) ([]domain.Note, error) {
	notes := make([]domain.Note, 0)
	if err := r.store.Find(&notes, nil); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepositoryImpl) GetNotesForAddress(
	ctx context.Context, addr string,
) ([]domain.Note, error) {
	notes := make([]domain.Note, 0)
	query := badgerhold.Where("Owner").Eq(addr)
	if err := r.store.Find(&notes, query); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepositoryImpl) GetAvailableNotesForAddress(
	ctx context.Context, addr string,
) ([]domain.Note, error) {
	notes, err := r.GetNotesForAddress(ctx, addr)
	if err != nil {
		return nil, err
	}
	available := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsAvailable() {
			available = append(available, n)
		}
	}
	return available, nil
}

func (r *noteRepositoryImpl) GetLockedNotesForAddress(
	ctx context.Context, addr string,
) ([]domain.Note, error) {
	notes, err := r.GetNotesForAddress(ctx, addr)
	if err != nil {
		return nil, err
	}
	locked := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsLocked() && !n.IsSpent() {
			locked = append(locked, n)
		}
	}
	return locked, nil
}

func (r *noteRepositoryImpl) GetNoteForKey(
	ctx context.Context, key domain.NoteKey,
) (*domain.Note, error) {
	var note domain.Note
	if err := r.store.Get(noteStoreKey(key), &note); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// LockNotes reserves all the given notes under txID in a single badger
// transaction, so either every note gets locked or none does.
func (r *noteRepositoryImpl) LockNotes(
	ctx context.Context, keys []domain.NoteKey, txID uuid.UUID,
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range keys {
			var note domain.Note
			if err := r.store.TxGet(tx, noteStoreKey(key), &note); err != nil {
				if err == badgerhold.ErrNotFound {
					return domain.ErrNoteNotFound
				}
				return err
			}
			if err := note.Lock(&txID); err != nil {
				return err
			}
			if err := r.store.TxUpdate(tx, noteStoreKey(key), note); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *noteRepositoryImpl) UnlockNotes(
	ctx context.Context, keys []domain.NoteKey,
) error {
	return r.updateNotes(keys, func(n *domain.Note) error {
		n.Unlock()
		return nil
	})
}

func (r *noteRepositoryImpl) SpendNotes(
	ctx context.Context, keys []domain.NoteKey,
) error {
	return r.updateNotes(keys, func(n *domain.Note) error {
		n.Spend()
		return nil
	})
}

func (r *noteRepositoryImpl) ConfirmNotes(
	ctx context.Context, keys []domain.NoteKey,
) error {
	return r.updateNotes(keys, func(n *domain.Note) error {
		n.Confirm()
		return nil
	})
}

func (r *noteRepositoryImpl) GetAvailableBalance(
	ctx context.Context, addr string,
) (uint64, error) {
	notes, err := r.GetAvailableNotesForAddress(ctx, addr)
	if err != nil {
		return 0, err
	}
	balance := uint64(0)
	for _, n := range notes {
		balance += n.Value
	}
	return balance, nil
}

func (r *noteRepositoryImpl) Reset(ctx context.Context) error {
	return r.store.DeleteMatching(domain.Note{}, nil)
}

func (r *noteRepositoryImpl) updateNotes(
	keys []domain.NoteKey, updateFn func(n *domain.Note) error,
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range keys {
			var note domain.Note
			if err := r.store.TxGet(tx, noteStoreKey(key), &note); err != nil {
				if err == badgerhold.ErrNotFound {
					return domain.ErrNoteNotFound
				}
				return err
			}
			if err := updateFn(&note); err != nil {
				return err
			}
			if err := r.store.TxUpdate(tx, noteStoreKey(key), note); err != nil {
				return err
			}
		}
		return nil
	})
}

func noteStoreKey(key domain.NoteKey) string {
	return fmt.Sprintf("%s:%d", key.TxID, key.Index)
}
