package domain

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

// IsInitialized returns whether the Vault holds an encrypted payload
func (v *Vault) IsInitialized() bool {
	return len(v.EncryptedPayload) > 0
}

// IsLocked returns whether the decrypted payload is absent from memory
func (v *Vault) IsLocked() bool {
	return !v.IsInitialized() || v.payload == nil
}

// Unlock decrypts the payload with the provided passphrase and caches the
// plain text payload, the signing wallet and the derived encryption key for
// the session. Unlocking an already unlocked vault is a no-op.
func (v *Vault) Unlock(passphrase string) error {
	if !v.IsInitialized() {
		return ErrVaultNotInitialized
	}
	if !v.IsLocked() {
		return nil
	}

	plainText, key, kdf, err := wallet.DecryptWithDetails(wallet.DecryptOpts{
		CypherText: v.EncryptedPayload,
		Passphrase: passphrase,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidPassphrase) {
			return ErrInvalidPassphrase
		}
		return err
	}

	payload := &VaultPayload{}
	if err := json.Unmarshal([]byte(plainText), payload); err != nil {
		return err
	}
	signer, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: payload.Mnemonic,
	})
	if err != nil {
		return err
	}

	v.payload = payload
	v.signer = signer
	v.key = key
	v.kdf = kdf
	return nil
}

// Lock wipes every piece of secret material from memory. Idempotent.
func (v *Vault) Lock() {
	if v.IsLocked() {
		return
	}
	v.signer.Wipe()
	v.signer = nil
	for i := range v.key {
		v.key[i] = 0
	}
	v.key = nil
	v.payload = nil
}

// GetMnemonic returns the mnemonic in plain text after re-authenticating with
// the passphrase. Viewing the seed is a sensitive action separate from
// general unlock, so the passphrase is always required even on an unlocked
// vault.
func (v *Vault) GetMnemonic(passphrase string) ([]string, error) {
	if !v.IsInitialized() {
		return nil, ErrVaultNotInitialized
	}

	plainText, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: v.EncryptedPayload,
		Passphrase: passphrase,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidPassphrase) {
			return nil, ErrInvalidPassphrase
		}
		return nil, err
	}

	payload := &VaultPayload{}
	if err := json.Unmarshal([]byte(plainText), payload); err != nil {
		return nil, err
	}
	return payload.Mnemonic, nil
}

// ChangePassphrase re-encrypts the payload under a key derived from the new
// passphrase after verifying the current one
func (v *Vault) ChangePassphrase(currentPassphrase, newPassphrase string) error {
	if !v.IsInitialized() {
		return ErrVaultNotInitialized
	}
	if len(newPassphrase) <= 0 {
		return ErrNullMnemonicOrPassphrase
	}
	if !v.isValidPassphrase(currentPassphrase) {
		return ErrInvalidPassphrase
	}

	plainText, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: v.EncryptedPayload,
		Passphrase: currentPassphrase,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidPassphrase) {
			return ErrInvalidPassphrase
		}
		return err
	}

	kdf := wallet.DefaultKdfParams()
	key, err := wallet.DeriveKey([]byte(newPassphrase), &kdf)
	if err != nil {
		return err
	}
	cypherText, err := wallet.EncryptWithKey(key, kdf, plainText)
	if err != nil {
		return err
	}

	v.EncryptedPayload = cypherText
	v.PassphraseHash = btcutil.Hash160([]byte(newPassphrase))
	if !v.IsLocked() {
		v.key = key
		v.kdf = kdf
	}
	return nil
}

// Signer returns the in-memory signing wallet
func (v *Vault) Signer() (*wallet.Wallet, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	return v.signer, nil
}

// Accounts returns all accounts, hidden ones included
func (v *Vault) Accounts() ([]Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	return append([]Account{}, v.payload.Accounts...), nil
}

// VisibleAccounts returns the accounts not hidden by the user
func (v *Vault) VisibleAccounts() ([]Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	accounts := make([]Account, 0, len(v.payload.Accounts))
	for _, a := range v.payload.Accounts {
		if !a.Hidden {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

// AccountByIndex returns the account with the given index
func (v *Vault) AccountByIndex(index uint32) (*Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	return v.accountByIndex(index)
}

// AccountByAddress returns the account owning the given address
func (v *Vault) AccountByAddress(addr string) (*Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	for i := range v.payload.Accounts {
		if v.payload.Accounts[i].Address == addr {
			account := v.payload.Accounts[i]
			return &account, nil
		}
	}
	return nil, ErrInvalidAccountIndex
}

// CurrentAccount returns the account the wallet is currently operating on
func (v *Vault) CurrentAccount() (*Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}
	return v.accountByIndex(v.payload.CurrentIndex)
}

// CreateAccount appends a new account derived as hardened child at the next
// free index and re-encrypts the payload. An empty name gets a default one.
func (v *Vault) CreateAccount(name string) (*Account, error) {
	if v.IsLocked() {
		return nil, ErrVaultMustBeUnlocked
	}

	index := uint32(len(v.payload.Accounts))
	if len(name) <= 0 {
		name = defaultAccountName(index)
	}
	address, err := v.signer.DeriveAccountAddress(wallet.DeriveAccountKeyOpts{
		DerivationKind: wallet.DerivationKindChild,
		AccountIndex:   index,
	})
	if err != nil {
		return nil, err
	}

	account := newAccount(index, name, address, wallet.DerivationKindChild)
	v.payload.Accounts = append(v.payload.Accounts, account)
	if err := v.seal(); err != nil {
		v.payload.Accounts = v.payload.Accounts[:index]
		return nil, err
	}
	return &account, nil
}

// SwitchAccount makes the account with the given index the current one
func (v *Vault) SwitchAccount(index uint32) error {
	if v.IsLocked() {
		return ErrVaultMustBeUnlocked
	}
	account, err := v.accountByIndex(index)
	if err != nil {
		return err
	}
	if account.Hidden {
		return ErrInvalidAccountIndex
	}
	v.payload.CurrentIndex = index
	return v.seal()
}

// RenameAccount updates the display name of the account with the given index
func (v *Vault) RenameAccount(index uint32, name string) error {
	if v.IsLocked() {
		return ErrVaultMustBeUnlocked
	}
	if len(name) <= 0 {
		return ErrInvalidAccountName
	}
	account, err := v.accountByIndex(index)
	if err != nil {
		return err
	}
	account.Name = name
	v.payload.Accounts[index] = *account
	return v.seal()
}

// UpdateAccountStyling updates icon style and color of the account with the
// given index
func (v *Vault) UpdateAccountStyling(index uint32, style, color string) error {
	if v.IsLocked() {
		return ErrVaultMustBeUnlocked
	}
	account, err := v.accountByIndex(index)
	if err != nil {
		return err
	}
	account.IconStyle = style
	account.IconColor = color
	v.payload.Accounts[index] = *account
	return v.seal()
}

// HideAccount hides the account with the given index, refusing to hide the
// last visible one. If the hidden account was the current one the vault
// switches to the first remaining visible account. Returns the index of the
// current account after the operation.
func (v *Vault) HideAccount(index uint32) (uint32, error) {
	if v.IsLocked() {
		return 0, ErrVaultMustBeUnlocked
	}
	account, err := v.accountByIndex(index)
	if err != nil {
		return 0, err
	}
	if account.Hidden {
		return 0, ErrAccountAlreadyHidden
	}

	visible := 0
	for _, a := range v.payload.Accounts {
		if !a.Hidden {
			visible++
		}
	}
	if visible <= 1 {
		return 0, ErrCannotHideLastAccount
	}

	account.Hidden = true
	v.payload.Accounts[index] = *account

	if v.payload.CurrentIndex == index {
		for _, a := range v.payload.Accounts {
			if !a.Hidden {
				v.payload.CurrentIndex = a.Index
				break
			}
		}
	}
	if err := v.seal(); err != nil {
		account.Hidden = false
		v.payload.Accounts[index] = *account
		return 0, err
	}
	return v.payload.CurrentIndex, nil
}

func (v *Vault) isValidPassphrase(passphrase string) bool {
	return bytes.Equal(v.PassphraseHash, btcutil.Hash160([]byte(passphrase)))
}

func (v *Vault) accountByIndex(index uint32) (*Account, error) {
	if int(index) >= len(v.payload.Accounts) {
		return nil, ErrInvalidAccountIndex
	}
	account := v.payload.Accounts[index]
	return &account, nil
}
