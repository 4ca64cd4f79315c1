package dbbadger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func TestAddAndRetrieveNotes(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.NoteRepository()
	ctx := context.Background()

	notes := []domain.Note{
		domain.NewNote("aa", 0, 40000, "addr1", "transfer"),
		domain.NewNote("aa", 1, 25000, "addr1", "transfer"),
		domain.NewNote("bb", 0, 10000, "addr2", "mining"),
	}
	require.NoError(t, repo.AddNotes(ctx, notes))

	all, err := repo.GetAllNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	forAddr, err := repo.GetNotesForAddress(ctx, "addr1")
	require.NoError(t, err)
	require.Len(t, forAddr, 2)

	balance, err := repo.GetAvailableBalance(ctx, "addr1")
	require.NoError(t, err)
	require.Equal(t, uint64(65000), balance)

	note, err := repo.GetNoteForKey(ctx, domain.NoteKey{TxID: "bb", Index: 0})
	require.NoError(t, err)
	require.Equal(t, uint64(10000), note.Value)

	_, err = repo.GetNoteForKey(ctx, domain.NoteKey{TxID: "cc", Index: 0})
	require.EqualError(t, err, domain.ErrNoteNotFound.Error())
}

func TestAddNotesPreservesLifecycleState(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.NoteRepository()
	ctx := context.Background()

	note := domain.NewNote("aa", 0, 40000, "addr1", "transfer")
	require.NoError(t, repo.AddNotes(ctx, []domain.Note{note}))

	txID := uuid.New()
	require.NoError(t, repo.LockNotes(ctx, []domain.NoteKey{note.Key()}, txID))

	// Re-adding the same note, as a chain sync does, must not clear the
	// reservation.
	require.NoError(t, repo.AddNotes(ctx, []domain.Note{note}))

	stored, err := repo.GetNoteForKey(ctx, note.Key())
	require.NoError(t, err)
	require.True(t, stored.IsLocked())
	require.Equal(t, txID, *stored.LockedBy)
}

func TestLockNotesAtomicity(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.NoteRepository()
	ctx := context.Background()

	notes := []domain.Note{
		domain.NewNote("aa", 0, 40000, "addr1", "transfer"),
		domain.NewNote("aa", 1, 25000, "addr1", "transfer"),
	}
	require.NoError(t, repo.AddNotes(ctx, notes))

	firstTx := uuid.New()
	require.NoError(
		t, repo.LockNotes(ctx, []domain.NoteKey{notes[0].Key()}, firstTx),
	)

	// Locking a batch that overlaps another reservation must not lock any
	// of its notes.
	otherTx := uuid.New()
	err := repo.LockNotes(
		ctx, []domain.NoteKey{notes[1].Key(), notes[0].Key()}, otherTx,
	)
	require.EqualError(t, err, domain.ErrNoteAlreadyLocked.Error())

	free, err := repo.GetNoteForKey(ctx, notes[1].Key())
	require.NoError(t, err)
	require.False(t, free.IsLocked())

	// Re-locking under the same id is idempotent.
	require.NoError(
		t, repo.LockNotes(ctx, []domain.NoteKey{notes[0].Key()}, firstTx),
	)

	require.NoError(t, repo.UnlockNotes(ctx, []domain.NoteKey{notes[0].Key()}))
	available, err := repo.GetAvailableNotesForAddress(ctx, "addr1")
	require.NoError(t, err)
	require.Len(t, available, 2)
}

func TestSpendAndConfirmNotes(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.NoteRepository()
	ctx := context.Background()

	note := domain.NewNote("aa", 0, 40000, "addr1", "transfer")
	note.Confirmed = false
	require.NoError(t, repo.AddNotes(ctx, []domain.Note{note}))

	// Unconfirmed notes do not count towards the spendable balance.
	balance, err := repo.GetAvailableBalance(ctx, "addr1")
	require.NoError(t, err)
	require.Zero(t, balance)

	require.NoError(t, repo.ConfirmNotes(ctx, []domain.NoteKey{note.Key()}))
	balance, err = repo.GetAvailableBalance(ctx, "addr1")
	require.NoError(t, err)
	require.Equal(t, uint64(40000), balance)

	require.NoError(t, repo.SpendNotes(ctx, []domain.NoteKey{note.Key()}))
	stored, err := repo.GetNoteForKey(ctx, note.Key())
	require.NoError(t, err)
	require.True(t, stored.IsSpent())

	balance, err = repo.GetAvailableBalance(ctx, "addr1")
	require.NoError(t, err)
	require.Zero(t, balance)
}

func TestNoteRepositoryReset(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.NoteRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddNotes(ctx, []domain.Note{
		domain.NewNote("aa", 0, 40000, "addr1", "transfer"),
	}))
	require.NoError(t, repo.Reset(ctx))

	all, err := repo.GetAllNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
