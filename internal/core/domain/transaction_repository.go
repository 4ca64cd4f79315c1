package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository is the durable log of send attempts.
type TransactionRepository interface {
	AddTransaction(ctx context.Context, tx *WalletTransaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*WalletTransaction, error)
	GetAllTransactionsForAccount(
		ctx context.Context, accountAddress string,
	) ([]WalletTransaction, error)
	// GetPendingTransactionsForAccount returns the non-terminal transactions
	// of the account, used by the reconciliation pass.
	GetPendingTransactionsForAccount(
		ctx context.Context, accountAddress string,
	) ([]WalletTransaction, error)
	UpdateTransaction(
		ctx context.Context,
		id uuid.UUID,
		updateFn func(tx *WalletTransaction) (*WalletTransaction, error),
	) error
	// Reset erases the transaction log. Only used by the wallet reset flow.
	Reset(ctx context.Context) error
}
