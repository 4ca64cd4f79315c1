package dbbadger

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

type transactionRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTransactionRepositoryImpl returns a badger-backed TransactionRepository
func NewTransactionRepositoryImpl(store *badgerhold.Store) domain.TransactionRepository {
	return &transactionRepositoryImpl{store}
}

func (r *transactionRepositoryImpl) AddTransaction(
	ctx context.Context, tx *domain.WalletTransaction,
) error {
	return r.store.Insert(tx.ID, *tx)
}

func (r *transactionRepositoryImpl) GetTransaction(
	ctx context.Context, id uuid.UUID,
) (*domain.WalletTransaction, error) {
	var tx domain.WalletTransaction
	if err := r.store.Get(id, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrTxNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepositoryImpl) GetAllTransactionsForAccount(
	ctx context.Context, accountAddress string,
) ([]domain.WalletTransaction, error) {
	txs := make([]domain.WalletTransaction, 0)
	query := badgerhold.Where("AccountAddress").Eq(accountAddress)
	if err := r.store.Find(&txs, query); err != nil {
		return nil, err
	}
	sortByCreation(txs)
	return txs, nil
}

func (r *transactionRepositoryImpl) GetPendingTransactionsForAccount(
	ctx context.Context, accountAddress string,
) ([]domain.WalletTransaction, error) {
	txs, err := r.GetAllTransactionsForAccount(ctx, accountAddress)
	if err != nil {
		return nil, err
	}
	pending := make([]domain.WalletTransaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.IsTerminal() {
			pending = append(pending, tx)
		}
	}
	return pending, nil
}

func (r *transactionRepositoryImpl) UpdateTransaction(
	ctx context.Context,
	id uuid.UUID,
	updateFn func(tx *domain.WalletTransaction) (*domain.WalletTransaction, error),
) error {
	tx, err := r.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	updatedTx, err := updateFn(tx)
	if err != nil {
		return err
	}

	return r.store.Update(id, *updatedTx)
}

func (r *transactionRepositoryImpl) Reset(ctx context.Context) error {
	return r.store.DeleteMatching(domain.WalletTransaction{}, nil)
}

func sortByCreation(txs []domain.WalletTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt < txs[j].CreatedAt
	})
}
