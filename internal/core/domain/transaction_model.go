package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TxStatusCodeCreated is the status of a just persisted send attempt
	// whose input notes are reserved but not yet signed.
	TxStatusCodeCreated = iota
	// TxStatusCodeBroadcastedUnconfirmed is the status of a transaction
	// accepted by the chain source and waiting for confirmation.
	TxStatusCodeBroadcastedUnconfirmed
	// TxStatusCodeConfirmed is the terminal status of a settled transaction.
	TxStatusCodeConfirmed
	// TxStatusCodeFailed is the terminal status of a send attempt that was
	// abandoned or failed at any point; its input notes are released.
	TxStatusCodeFailed
)

// WalletTransaction records one send attempt from its creation to its
// terminal status. Status only moves forward, except towards Failed which is
// reachable from any non-terminal status.
type WalletTransaction struct {
	ID             uuid.UUID
	AccountAddress string
	Direction      string
	Status         int
	CreatedAt      int64
	UpdatedAt      int64
	InputNoteKeys  []NoteKey
	Recipient      string
	Amount         uint64
	Fee            uint64
	ExpectedChange uint64
	ChainTxID      string
	TxHex          string
}

// NewWalletTransaction returns an outgoing transaction in Created status
// reserving the given note keys
func NewWalletTransaction(
	accountAddress, recipient string,
	amount, fee, expectedChange uint64,
	inputNoteKeys []NoteKey,
) *WalletTransaction {
	now := time.Now().Unix()
	return &WalletTransaction{
		ID:             uuid.New(),
		AccountAddress: accountAddress,
		Direction:      TxDirectionOutgoing,
		Status:         TxStatusCodeCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
		InputNoteKeys:  inputNoteKeys,
		Recipient:      recipient,
		Amount:         amount,
		Fee:            fee,
		ExpectedChange: expectedChange,
	}
}

// IsTerminal returns whether the transaction reached Confirmed or Failed.
func (t *WalletTransaction) IsTerminal() bool {
	return t.Status == TxStatusCodeConfirmed || t.Status == TxStatusCodeFailed
}

// Broadcast brings a Created transaction to BroadcastedUnconfirmed, storing
// the chain-assigned txid and the serialized transaction that was accepted
// by the chain source.
func (t *WalletTransaction) Broadcast(chainTxID, txHex string) error {
	if t.Status != TxStatusCodeCreated {
		return ErrInvalidStatusTransition
	}
	t.Status = TxStatusCodeBroadcastedUnconfirmed
	t.ChainTxID = chainTxID
	t.TxHex = txHex
	t.UpdatedAt = time.Now().Unix()
	return nil
}

// Confirm brings a BroadcastedUnconfirmed transaction to Confirmed.
func (t *WalletTransaction) Confirm() error {
	if t.Status != TxStatusCodeBroadcastedUnconfirmed {
		return ErrInvalidStatusTransition
	}
	t.Status = TxStatusCodeConfirmed
	t.UpdatedAt = time.Now().Unix()
	return nil
}

// Fail brings any non-terminal transaction to Failed.
func (t *WalletTransaction) Fail() error {
	if t.IsTerminal() {
		return ErrInvalidStatusTransition
	}
	t.Status = TxStatusCodeFailed
	t.UpdatedAt = time.Now().Unix()
	return nil
}
