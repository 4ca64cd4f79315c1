package domain

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

// Account is a derived identity of the wallet. Accounts are never deleted,
// only hidden, and live exclusively inside the encrypted vault payload so
// that addresses cannot be enumerated without the passphrase.
type Account struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Index          uint32 `json:"index"`
	DerivationKind string `json:"derivationKind"`
	IconStyle      string `json:"iconStyle"`
	IconColor      string `json:"iconColor"`
	Hidden         bool   `json:"hidden"`
	CreatedAt      int64  `json:"createdAt"`
}

// VaultPayload is the plain text content of the encrypted blob. It exists in
// process memory only between unlock and lock.
type VaultPayload struct {
	Mnemonic     []string  `json:"mnemonic"`
	Accounts     []Account `json:"accounts"`
	CurrentIndex uint32    `json:"currentIndex"`
}

// Vault owns the encrypted payload and, while unlocked, the decrypted secret
// material. Only the exported fields are ever persisted; the session state
// lives in unexported fields that no codec serializes.
type Vault struct {
	EncryptedPayload string
	PassphraseHash   []byte

	payload *VaultPayload
	signer  *wallet.Wallet
	key     []byte
	kdf     wallet.KdfParams
}

// NewVault derives the first account from the given mnemonic, encrypts the
// payload with the passphrase and returns the new Vault. The vault is left
// unlocked so that the caller is not asked to re-enter the passphrase it just
// chose.
func NewVault(mnemonic []string, passphrase string) (*Vault, error) {
	if len(mnemonic) <= 0 || len(passphrase) <= 0 {
		return nil, ErrNullMnemonicOrPassphrase
	}
	signer, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: mnemonic,
	})
	if err != nil {
		return nil, ErrInvalidMnemonic
	}

	// the first account always uses the master key directly, its address
	// predates hierarchical derivation and must stay reachable
	address, err := signer.DeriveAccountAddress(wallet.DeriveAccountKeyOpts{
		DerivationKind: wallet.DerivationKindMaster,
	})
	if err != nil {
		return nil, err
	}

	kdf := wallet.DefaultKdfParams()
	key, err := wallet.DeriveKey([]byte(passphrase), &kdf)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		PassphraseHash: btcutil.Hash160([]byte(passphrase)),
		payload: &VaultPayload{
			Mnemonic: mnemonic,
			Accounts: []Account{
				newAccount(0, "Account 1", address, wallet.DerivationKindMaster),
			},
		},
		signer: signer,
		key:    key,
		kdf:    kdf,
	}
	if err := v.seal(); err != nil {
		return nil, err
	}
	return v, nil
}

func newAccount(index uint32, name, address, derivationKind string) Account {
	style, color := stylingForIndex(index)
	return Account{
		Name:           name,
		Address:        address,
		Index:          index,
		DerivationKind: derivationKind,
		IconStyle:      style,
		IconColor:      color,
		CreatedAt:      time.Now().Unix(),
	}
}

// stylingForIndex walks the fixed palette for the first accounts and falls
// back to a randomized combination beyond it
func stylingForIndex(index uint32) (string, string) {
	if int(index) < len(accountIconStyles) {
		return accountIconStyles[index], accountIconColors[index]
	}
	return accountIconStyles[rand.Intn(len(accountIconStyles))],
		accountIconColors[rand.Intn(len(accountIconColors))]
}

func defaultAccountName(index uint32) string {
	return fmt.Sprintf("Account %d", index+1)
}

// seal re-encrypts the current payload into EncryptedPayload. It is the
// single choke-point every mutator goes through, accounts are never stored
// outside of the encrypted blob.
func (v *Vault) seal() error {
	buf, err := json.Marshal(v.payload)
	if err != nil {
		return err
	}
	cypherText, err := wallet.EncryptWithKey(v.key, v.kdf, string(buf))
	if err != nil {
		return err
	}
	v.EncryptedPayload = cypherText
	return nil
}
