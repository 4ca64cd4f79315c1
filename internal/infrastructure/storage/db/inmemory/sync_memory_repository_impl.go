package inmemory

import (
	"context"
	"sync"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

// SyncRepositoryImpl represents an in memory storage
type SyncRepositoryImpl struct {
	locker    *sync.RWMutex
	lastSyncs map[string]int64
}

// NewSyncRepositoryImpl returns a new empty SyncRepositoryImpl
func NewSyncRepositoryImpl() domain.SyncRepository {
	return &SyncRepositoryImpl{
		locker:    &sync.RWMutex{},
		lastSyncs: map[string]int64{},
	}
}

func (r *SyncRepositoryImpl) GetLastSync(
	_ context.Context, addr string,
) (int64, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	return r.lastSyncs[addr], nil
}

func (r *SyncRepositoryImpl) SetLastSync(
	_ context.Context, addr string, timestamp int64,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.lastSyncs[addr] = timestamp
	return nil
}

func (r *SyncRepositoryImpl) Reset(_ context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.lastSyncs = map[string]int64{}
	return nil
}
