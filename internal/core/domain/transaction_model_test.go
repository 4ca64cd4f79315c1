package domain_test

import (
	"testing"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func newTestTransaction() *domain.WalletTransaction {
	return domain.NewWalletTransaction(
		"senderaddr", "recipientaddr", 120, 10, 20,
		[]domain.NoteKey{{TxID: "aa11", Index: 0}, {TxID: "bb22", Index: 1}},
	)
}

func TestTransactionLifecycle(t *testing.T) {
	t.Parallel()

	tx := newTestTransaction()
	require.Equal(t, domain.TxStatusCodeCreated, tx.Status)
	require.Equal(t, domain.TxDirectionOutgoing, tx.Direction)
	require.False(t, tx.IsTerminal())

	err := tx.Broadcast("ff00", "deadbeef")
	require.NoError(t, err)
	require.Equal(t, domain.TxStatusCodeBroadcastedUnconfirmed, tx.Status)
	require.Equal(t, "deadbeef", tx.TxHex)

	err = tx.Confirm()
	require.NoError(t, err)
	require.Equal(t, domain.TxStatusCodeConfirmed, tx.Status)
	require.True(t, tx.IsTerminal())
}

func TestTransactionFailIsTerminal(t *testing.T) {
	t.Parallel()

	tx := newTestTransaction()
	require.NoError(t, tx.Fail())
	require.Equal(t, domain.TxStatusCodeFailed, tx.Status)

	// no way out of Failed
	require.EqualError(t, tx.Broadcast("ff00", "deadbeef"), domain.ErrInvalidStatusTransition.Error())
	require.EqualError(t, tx.Confirm(), domain.ErrInvalidStatusTransition.Error())
	require.EqualError(t, tx.Fail(), domain.ErrInvalidStatusTransition.Error())
}

func TestTransactionStatusOnlyMovesForward(t *testing.T) {
	t.Parallel()

	tx := newTestTransaction()
	require.EqualError(t, tx.Confirm(), domain.ErrInvalidStatusTransition.Error())

	require.NoError(t, tx.Broadcast("ff00", "deadbeef"))
	require.EqualError(t, tx.Broadcast("ff00", "deadbeef"), domain.ErrInvalidStatusTransition.Error())

	// a broadcasted-unconfirmed attempt can still be failed by reconciliation
	require.NoError(t, tx.Fail())
}

func TestConfirmedTransactionCannotFail(t *testing.T) {
	t.Parallel()

	tx := newTestTransaction()
	require.NoError(t, tx.Broadcast("ff00", "deadbeef"))
	require.NoError(t, tx.Confirm())
	require.EqualError(t, tx.Fail(), domain.ErrInvalidStatusTransition.Error())
}
