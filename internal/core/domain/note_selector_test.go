package domain_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestSelectNotesForAmount(t *testing.T) {
	t.Parallel()

	notes := []domain.Note{
		domain.NewNote("aa11", 0, 50, "addr", "transfer"),
		domain.NewNote("bb22", 1, 100, "addr", "transfer"),
	}

	// largest-first: the 100 note is picked before the 50 one
	selected, change, err := domain.SelectNotesForAmount(notes, 120)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, uint64(100), selected[0].Value)
	require.Equal(t, uint64(50), selected[1].Value)
	require.Equal(t, uint64(30), change)

	// a single note covering the target is enough
	selected, change, err = domain.SelectNotesForAmount(notes, 80)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	require.Equal(t, uint64(100), selected[0].Value)
	require.Equal(t, uint64(20), change)

	// exact cover leaves zero change
	selected, change, err = domain.SelectNotesForAmount(notes, 150)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, uint64(0), change)
}

func TestSelectNotesForAmountIsDeterministic(t *testing.T) {
	t.Parallel()

	notes := []domain.Note{
		domain.NewNote("aa11", 0, 40, "addr", "transfer"),
		domain.NewNote("bb22", 0, 40, "addr", "transfer"),
		domain.NewNote("cc33", 1, 40, "addr", "transfer"),
		domain.NewNote("cc33", 0, 40, "addr", "transfer"),
	}

	first, _, err := domain.SelectNotesForAmount(notes, 70)
	require.NoError(t, err)

	// Equal-value ties must resolve the same way whatever order the
	// repository handed the notes over in.
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.Note, len(notes))
		copy(shuffled, notes)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		again, _, err := domain.SelectNotesForAmount(shuffled, 70)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFailingSelectNotesForAmount(t *testing.T) {
	t.Parallel()

	notes := []domain.Note{
		domain.NewNote("aa11", 0, 50, "addr", "transfer"),
		domain.NewNote("bb22", 1, 100, "addr", "transfer"),
	}

	_, _, err := domain.SelectNotesForAmount(notes, 151)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.Contains(t, err.Error(), "available 150")

	_, _, err = domain.SelectNotesForAmount(notes, 0)
	require.EqualError(t, err, domain.ErrInvalidAmount.Error())
}

func TestSelectSkipsUnavailableNotes(t *testing.T) {
	t.Parallel()

	locked := domain.NewNote("bb22", 1, 100, "addr", "transfer")
	txID := uuid.New()
	require.NoError(t, locked.Lock(&txID))
	spent := domain.NewNote("cc33", 0, 100, "addr", "transfer")
	spent.Spend()

	notes := []domain.Note{
		domain.NewNote("aa11", 0, 50, "addr", "transfer"),
		locked,
		spent,
	}

	_, _, err := domain.SelectNotesForAmount(notes, 60)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	selected, change, err := domain.SelectNotesForAmount(notes, 50)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	require.Equal(t, "aa11", selected[0].TxID)
	require.Equal(t, uint64(0), change)
}

func TestSelectNotesForSweep(t *testing.T) {
	t.Parallel()

	locked := domain.NewNote("bb22", 1, 100, "addr", "transfer")
	txID := uuid.New()
	require.NoError(t, locked.Lock(&txID))

	notes := []domain.Note{
		domain.NewNote("aa11", 0, 50, "addr", "transfer"),
		locked,
		domain.NewNote("cc33", 2, 25, "addr", "transfer"),
	}

	selected, total := domain.SelectNotesForSweep(notes)
	require.Len(t, selected, 2)
	require.Equal(t, uint64(75), total)
}
