package domain

import "context"

// VaultRepository persists the encrypted vault. Implementations keep the
// live, possibly unlocked instance in memory and only ever write the
// encrypted fields to durable storage.
type VaultRepository interface {
	// GetVault returns the vault or ErrVaultNotInitialized when none exists.
	GetVault(ctx context.Context) (*Vault, error)
	// UpdateVault applies updateFn to the stored vault (or to a zero value if
	// none exists yet) and persists the result if no error is returned.
	UpdateVault(
		ctx context.Context,
		updateFn func(v *Vault) (*Vault, error),
	) error
	// Reset erases the persisted vault. Destructive, used for password-loss
	// recovery.
	Reset(ctx context.Context) error
}
