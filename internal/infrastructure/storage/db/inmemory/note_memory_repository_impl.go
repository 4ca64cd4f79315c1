package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

// NoteRepositoryImpl represents an in memory storage
type NoteRepositoryImpl struct {
	locker *sync.RWMutex
	notes  map[domain.NoteKey]domain.Note
}

// NewNoteRepositoryImpl returns a new empty NoteRepositoryImpl
func NewNoteRepositoryImpl() domain.NoteRepository {
	return &NoteRepositoryImpl{
		locker: &sync.RWMutex{},
		notes:  map[domain.NoteKey]domain.Note{},
	}
}

func (r *NoteRepositoryImpl) AddNotes(
	_ context.Context, notes []domain.Note,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, note := range notes {
		if existing, ok := r.notes[note.Key()]; ok {
			// Chain-side fields only, local lifecycle state survives.
			existing.Value = note.Value
			existing.Origin = note.Origin
			existing.Confirmed = note.Confirmed
			r.notes[note.Key()] = existing
			continue
		}
		r.notes[note.Key()] = note
	}
	return nil
}

func (r *NoteRepositoryImpl) GetAllNotes(_ context.Context) ([]domain.Note, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	notes := make([]domain.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) GetNotesForAddress(
	_ context.Context, addr string,
) ([]domain.Note, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.notesForAddress(addr, nil), nil
}

func (r *NoteRepositoryImpl) GetAvailableNotesForAddress(
	_ context.Context, addr string,
) ([]domain.Note, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.notesForAddress(addr, func(n domain.Note) bool {
		return n.IsAvailable()
	}), nil
}

func (r *NoteRepositoryImpl) GetLockedNotesForAddress(
	_ context.Context, addr string,
) ([]domain.Note, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.notesForAddress(addr, func(n domain.Note) bool {
		return n.IsLocked() && !n.IsSpent()
	}), nil
}

func (r *NoteRepositoryImpl) GetNoteForKey(
	_ context.Context, key domain.NoteKey,
) (*domain.Note, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	note, ok := r.notes[key]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return &note, nil
}

// LockNotes reserves all the given notes or none of them.
func (r *NoteRepositoryImpl) LockNotes(
	_ context.Context, keys []domain.NoteKey, txID uuid.UUID,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	updated := make([]domain.Note, 0, len(keys))
	for _, key := range keys {
		note, ok := r.notes[key]
		if !ok {
			return domain.ErrNoteNotFound
		}
		if err := note.Lock(&txID); err != nil {
			return err
		}
		updated = append(updated, note)
	}
	for _, note := range updated {
		r.notes[note.Key()] = note
	}
	return nil
}

func (r *NoteRepositoryImpl) UnlockNotes(
	_ context.Context, keys []domain.NoteKey,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, key := range keys {
		note, ok := r.notes[key]
		if !ok {
			continue
		}
		note.Unlock()
		r.notes[key] = note
	}
	return nil
}

func (r *NoteRepositoryImpl) SpendNotes(
	_ context.Context, keys []domain.NoteKey,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, key := range keys {
		note, ok := r.notes[key]
		if !ok {
			return domain.ErrNoteNotFound
		}
		note.Spend()
		r.notes[key] = note
	}
	return nil
}

func (r *NoteRepositoryImpl) ConfirmNotes(
	_ context.Context, keys []domain.NoteKey,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, key := range keys {
		note, ok := r.notes[key]
		if !ok {
			return domain.ErrNoteNotFound
		}
		note.Confirm()
		r.notes[key] = note
	}
	return nil
}

func (r *NoteRepositoryImpl) GetAvailableBalance(
	_ context.Context, addr string,
) (uint64, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	balance := uint64(0)
	for _, note := range r.notes {
		if note.Owner == addr && note.IsAvailable() {
			balance += note.Value
		}
	}
	return balance, nil
}

func (r *NoteRepositoryImpl) Reset(_ context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.notes = map[domain.NoteKey]domain.Note{}
	return nil
}

func (r *NoteRepositoryImpl) notesForAddress(
	addr string, filter func(domain.Note) bool,
) []domain.Note {
	notes := make([]domain.Note, 0)
	for _, note := range r.notes {
		if note.Owner != addr {
			continue
		}
		if filter != nil && !filter(note) {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}
