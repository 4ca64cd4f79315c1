package inmemory

import (
	"context"
	"sync"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

// VaultRepositoryImpl represents an in memory storage
type VaultRepositoryImpl struct {
	locker *sync.Mutex
	vault  *domain.Vault
}

// NewVaultRepositoryImpl returns a new empty VaultRepositoryImpl
func NewVaultRepositoryImpl() domain.VaultRepository {
	return &VaultRepositoryImpl{
		locker: &sync.Mutex{},
	}
}

func (r *VaultRepositoryImpl) GetVault(
	_ context.Context,
) (*domain.Vault, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.vault == nil {
		return nil, domain.ErrVaultNotInitialized
	}
	return r.vault, nil
}

// UpdateVault passes the stored vault, or an empty one if none exists yet,
// to the update function and commits whatever it returns.
func (r *VaultRepositoryImpl) UpdateVault(
	_ context.Context,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	v := r.vault
	if v == nil {
		v = &domain.Vault{}
	}

	updatedVault, err := updateFn(v)
	if err != nil {
		return err
	}

	r.vault = updatedVault
	return nil
}

func (r *VaultRepositoryImpl) Reset(_ context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.vault = nil
	return nil
}
