package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestSpendNote(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 0, 100, "addr", "transfer")
	require.False(t, n.IsSpent())
	require.True(t, n.IsAvailable())

	n.Spend()
	require.True(t, n.IsSpent())
	require.False(t, n.IsAvailable())
}

func TestLockUnlockNote(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 0, 100, "addr", "transfer")
	require.False(t, n.IsLocked())

	txID := uuid.New()
	err := n.Lock(&txID)
	require.NoError(t, err)
	require.True(t, n.IsLocked())
	require.False(t, n.IsAvailable())

	n.Unlock()
	require.False(t, n.IsLocked())
	require.True(t, n.IsAvailable())
}

func TestFailingLockNote(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 0, 100, "addr", "transfer")

	txID := uuid.New()
	err := n.Lock(&txID)
	require.NoError(t, err)

	// locking again under the same transaction id is a no-op
	err = n.Lock(&txID)
	require.NoError(t, err)

	otherTxID := uuid.New()
	err = n.Lock(&otherTxID)
	require.EqualError(t, err, domain.ErrNoteAlreadyLocked.Error())
	require.Equal(t, txID.String(), n.LockedBy.String())
}

func TestLockSpentNote(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 0, 100, "addr", "transfer")
	n.Spend()

	txID := uuid.New()
	err := n.Lock(&txID)
	require.EqualError(t, err, domain.ErrNoteAlreadySpent.Error())
}

func TestNoteKey(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 3, 100, "addr", "transfer")
	require.Equal(t, domain.NoteKey{TxID: "aa11", Index: 3}, n.Key())
	require.True(t, n.IsKeyEqual(domain.NoteKey{TxID: "aa11", Index: 3}))
	require.False(t, n.IsKeyEqual(domain.NoteKey{TxID: "aa11", Index: 4}))
}

func TestUnconfirmedNoteIsNotAvailable(t *testing.T) {
	t.Parallel()

	n := domain.NewNote("aa11", 0, 100, "addr", "transfer")
	n.Confirmed = false
	require.False(t, n.IsAvailable())

	n.Confirm()
	require.True(t, n.IsAvailable())
}
