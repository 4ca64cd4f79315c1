package wallet

import (
	"errors"
	"strings"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed is null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key is null")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher text is malformed")
	// ErrInvalidPassphrase ...
	ErrInvalidPassphrase = errors.New("passphrase is not valid")
	// ErrInvalidKdfParams ...
	ErrInvalidKdfParams = errors.New("kdf params are malformed")
	// ErrUnsupportedBlobVersion ...
	ErrUnsupportedBlobVersion = errors.New("encrypted blob version is not supported")
	// ErrInvalidAccountIndex ...
	ErrInvalidAccountIndex = errors.New("account index is out of range")
	// ErrInvalidDerivationKind ...
	ErrInvalidDerivationKind = errors.New("derivation kind is unknown")
	// ErrInvalidDigest ...
	ErrInvalidDigest = errors.New("digest must be a 32 byte array")
)

// Wallet is the HD key tree rooted at the seed of a signing mnemonic. It is
// the only type able to derive account keys and sign digests, and it never
// leaves process memory.
type Wallet struct {
	signingMnemonic  []string
	signingMasterKey []byte
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet with a freshly generated mnemonic
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := generateMnemonic(opts.EntropySize)
	if err != nil {
		return nil, err
	}
	seed := generateSeedFromMnemonic(mnemonic, "")
	masterKey, err := generateSigningMasterKey(seed)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		signingMnemonic:  mnemonic,
		signingMasterKey: masterKey,
	}, nil
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	SigningMnemonic []string
	Passphrase      string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.SigningMnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.SigningMnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the wallet's master key from an existing
// mnemonic and an optional BIP39 passphrase
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed := generateSeedFromMnemonic(opts.SigningMnemonic, opts.Passphrase)
	masterKey, err := generateSigningMasterKey(seed)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		signingMnemonic:  opts.SigningMnemonic,
		signingMasterKey: masterKey,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.signingMasterKey) <= 0 {
		return ErrNullMasterKey
	}
	if len(w.signingMnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(w.signingMnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// SigningMnemonic is getter for the mnemonic in plain text
func (w *Wallet) SigningMnemonic() ([]string, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w.signingMnemonic, nil
}

// Wipe overwrites the in-memory secret material. The wallet is unusable
// afterwards, every operation fails with ErrNullMasterKey.
func (w *Wallet) Wipe() {
	for i := range w.signingMasterKey {
		w.signingMasterKey[i] = 0
	}
	w.signingMasterKey = nil
	for i := range w.signingMnemonic {
		w.signingMnemonic[i] = strings.Repeat("\x00", len(w.signingMnemonic[i]))
	}
	w.signingMnemonic = nil
}
