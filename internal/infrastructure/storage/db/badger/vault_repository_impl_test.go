package dbbadger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

var (
	testMnemonic = []string{
		"leave", "dice", "fine", "decrease", "dune", "ribbon", "ocean",
		"earn", "lunar", "account", "silver", "admit", "cheap", "fringe",
		"disorder", "trade", "because", "trade", "steak", "clock", "grace",
		"video", "jacket", "equal",
	}
	testPassphrase = "pw123456"
)

func TestVaultPersistence(t *testing.T) {
	dbDir := t.TempDir()
	ctx := context.Background()

	repoManager, err := NewRepoManager(dbDir, nil)
	require.NoError(t, err)

	repo := repoManager.VaultRepository()
	_, err = repo.GetVault(ctx)
	require.EqualError(t, err, domain.ErrVaultNotInitialized.Error())

	var address string
	require.NoError(t, repo.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			newVault, err := domain.NewVault(testMnemonic, testPassphrase)
			if err != nil {
				return nil, err
			}
			account, err := newVault.AccountByIndex(0)
			if err != nil {
				return nil, err
			}
			address = account.Address
			return newVault, nil
		},
	))

	// The live instance keeps the session of the unlocked vault.
	v, err := repo.GetVault(ctx)
	require.NoError(t, err)
	require.False(t, v.IsLocked())

	repoManager.Close()

	// A reopened store only holds the encrypted payload: the vault comes
	// back locked and unlocks with the same passphrase.
	repoManager, err = NewRepoManager(dbDir, nil)
	require.NoError(t, err)
	defer repoManager.Close()

	repo = repoManager.VaultRepository()
	v, err = repo.GetVault(ctx)
	require.NoError(t, err)
	require.True(t, v.IsInitialized())
	require.True(t, v.IsLocked())

	require.NoError(t, v.Unlock(testPassphrase))
	account, err := v.AccountByIndex(0)
	require.NoError(t, err)
	require.Equal(t, address, account.Address)
}

func TestVaultRepositoryReset(t *testing.T) {
	repoManager := newTestRepoManager(t)
	repo := repoManager.VaultRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			return domain.NewVault(testMnemonic, testPassphrase)
		},
	))

	require.NoError(t, repo.Reset(ctx))

	_, err := repo.GetVault(ctx)
	require.EqualError(t, err, domain.ErrVaultNotInitialized.Error())
}
