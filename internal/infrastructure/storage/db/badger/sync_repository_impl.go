package dbbadger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

// lastSync records the timestamp of the last successful chain sync of an
// account address.
type lastSync struct {
	Address   string
	Timestamp int64
}

type syncRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSyncRepositoryImpl returns a badger-backed SyncRepository. It shares
// the notes store, sync checkpoints live and die with the notes they cover.
func NewSyncRepositoryImpl(store *badgerhold.Store) domain.SyncRepository {
	return &syncRepositoryImpl{store}
}

func (r *syncRepositoryImpl) GetLastSync(
	ctx context.Context, addr string,
) (int64, error) {
	var record lastSync
	if err := r.store.Get(syncStoreKey(addr), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return record.Timestamp, nil
}

func (r *syncRepositoryImpl) SetLastSync(
	ctx context.Context, addr string, timestamp int64,
) error {
	return r.store.Upsert(syncStoreKey(addr), lastSync{
		Address:   addr,
		Timestamp: timestamp,
	})
}

func (r *syncRepositoryImpl) Reset(ctx context.Context) error {
	return r.store.DeleteMatching(lastSync{}, nil)
}

func syncStoreKey(addr string) string {
	return fmt.Sprintf("lastsync:%s", addr)
}
