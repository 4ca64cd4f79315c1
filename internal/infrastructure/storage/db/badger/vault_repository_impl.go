package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

const vaultKey = "vault"

type vaultRepositoryImpl struct {
	store *badgerhold.Store

	locker *sync.Mutex
	// The store only ever sees the encrypted fields of the vault. The live
	// instance, which carries the in-memory session state of an unlocked
	// vault, is cached here and survives until Lock or process exit.
	vault *domain.Vault
}

// NewVaultRepositoryImpl returns a badger-backed VaultRepository
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return &vaultRepositoryImpl{
		store:  store,
		locker: &sync.Mutex{},
	}
}

func (r *vaultRepositoryImpl) GetVault(
	ctx context.Context,
) (*domain.Vault, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.getVault()
}

func (r *vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	v, err := r.getVault()
	if err != nil {
		if err != domain.ErrVaultNotInitialized {
			return err
		}
		v = &domain.Vault{}
	}

	updatedVault, err := updateFn(v)
	if err != nil {
		return err
	}

	if err := r.store.Upsert(vaultKey, *updatedVault); err != nil {
		return err
	}
	r.vault = updatedVault
	return nil
}

func (r *vaultRepositoryImpl) Reset(ctx context.Context) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.vault != nil {
		r.vault.Lock()
		r.vault = nil
	}
	if err := r.store.Delete(vaultKey, domain.Vault{}); err != nil &&
		err != badgerhold.ErrNotFound {
		return err
	}
	return nil
}

func (r *vaultRepositoryImpl) getVault() (*domain.Vault, error) {
	if r.vault != nil {
		return r.vault, nil
	}

	var v domain.Vault
	if err := r.store.Get(vaultKey, &v); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrVaultNotInitialized
		}
		return nil, err
	}
	r.vault = &v
	return r.vault, nil
}
