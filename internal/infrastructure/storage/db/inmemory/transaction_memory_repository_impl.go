package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

// TransactionRepositoryImpl represents an in memory storage
type TransactionRepositoryImpl struct {
	locker       *sync.RWMutex
	transactions map[uuid.UUID]domain.WalletTransaction
}

// NewTransactionRepositoryImpl returns a new empty TransactionRepositoryImpl
func NewTransactionRepositoryImpl() domain.TransactionRepository {
	return &TransactionRepositoryImpl{
		locker:       &sync.RWMutex{},
		transactions: map[uuid.UUID]domain.WalletTransaction{},
	}
}

func (r *TransactionRepositoryImpl) AddTransaction(
	_ context.Context, tx *domain.WalletTransaction,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.transactions[tx.ID] = *tx
	return nil
}

func (r *TransactionRepositoryImpl) GetTransaction(
	_ context.Context, id uuid.UUID,
) (*domain.WalletTransaction, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, domain.ErrTxNotFound
	}
	return &tx, nil
}

func (r *TransactionRepositoryImpl) GetAllTransactionsForAccount(
	_ context.Context, accountAddress string,
) ([]domain.WalletTransaction, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.transactionsForAccount(accountAddress, nil), nil
}

func (r *TransactionRepositoryImpl) GetPendingTransactionsForAccount(
	_ context.Context, accountAddress string,
) ([]domain.WalletTransaction, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.transactionsForAccount(
		accountAddress,
		func(tx domain.WalletTransaction) bool {
			return !tx.IsTerminal()
		},
	), nil
}

func (r *TransactionRepositoryImpl) UpdateTransaction(
	_ context.Context,
	id uuid.UUID,
	updateFn func(tx *domain.WalletTransaction) (*domain.WalletTransaction, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	tx, ok := r.transactions[id]
	if !ok {
		return domain.ErrTxNotFound
	}

	updatedTx, err := updateFn(&tx)
	if err != nil {
		return err
	}

	r.transactions[id] = *updatedTx
	return nil
}

func (r *TransactionRepositoryImpl) Reset(_ context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.transactions = map[uuid.UUID]domain.WalletTransaction{}
	return nil
}

func (r *TransactionRepositoryImpl) transactionsForAccount(
	accountAddress string, filter func(domain.WalletTransaction) bool,
) []domain.WalletTransaction {
	txs := make([]domain.WalletTransaction, 0)
	for _, tx := range r.transactions {
		if tx.AccountAddress != accountAddress {
			continue
		}
		if filter != nil && !filter(tx) {
			continue
		}
		txs = append(txs, tx)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt < txs[j].CreatedAt
	})
	return txs
}
