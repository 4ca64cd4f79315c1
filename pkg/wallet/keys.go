package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// DerivationKindMaster marks an account whose key pair is the master key
	// itself, with no child derivation. The very first account of a vault uses
	// this scheme for compatibility with the legacy address format.
	DerivationKindMaster = "master"
	// DerivationKindChild marks an account derived as hardened child of the
	// master key at the account's own index.
	DerivationKindChild = "child"

	// AddressVersion is the base58check version byte of PKH addresses.
	AddressVersion byte = 0x35

	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = hdkeychain.HardenedKeyStart - 1
)

// DeriveAccountKeyOpts is the struct given to DeriveAccountKeyPair and
// DeriveAccountAddress methods
type DeriveAccountKeyOpts struct {
	DerivationKind string
	AccountIndex   uint32
}

func (o DeriveAccountKeyOpts) validate() error {
	switch o.DerivationKind {
	case DerivationKindMaster, DerivationKindChild:
	default:
		return ErrInvalidDerivationKind
	}
	if o.AccountIndex > MaxHardenedValue {
		return ErrInvalidAccountIndex
	}
	return nil
}

// DeriveAccountKeyPair derives the key pair of the account at the provided
// index. Re-deriving with the same kind and index always yields the same pair;
// the kind recorded at account creation is part of the account's identity,
// deriving with the wrong one produces a key for a different address.
func (w *Wallet) DeriveAccountKeyPair(opts DeriveAccountKeyOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := w.validate(); err != nil {
		return nil, nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(string(w.signingMasterKey))
	if err != nil {
		return nil, nil, err
	}

	if opts.DerivationKind == DerivationKindChild {
		hdNode, err = hdNode.Derive(hdkeychain.HardenedKeyStart + opts.AccountIndex)
		if err != nil {
			return nil, nil, err
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, err
	}
	return privateKey, publicKey, nil
}

// DeriveAccountAddress returns the PKH address of the account at the provided
// index
func (w *Wallet) DeriveAccountAddress(opts DeriveAccountKeyOpts) (string, error) {
	_, publicKey, err := w.DeriveAccountKeyPair(opts)
	if err != nil {
		return "", err
	}
	return AddressFromPubKey(publicKey), nil
}

// SignDigestOpts is the struct given to the SignDigest method
type SignDigestOpts struct {
	DerivationKind string
	AccountIndex   uint32
	Digest         []byte
}

// SignDigest produces a DER encoded ECDSA signature of the digest with the
// account's private key
func (w *Wallet) SignDigest(opts SignDigestOpts) ([]byte, error) {
	if len(opts.Digest) != chainhash.HashSize {
		return nil, ErrInvalidDigest
	}
	privateKey, _, err := w.DeriveAccountKeyPair(DeriveAccountKeyOpts{
		DerivationKind: opts.DerivationKind,
		AccountIndex:   opts.AccountIndex,
	})
	if err != nil {
		return nil, err
	}
	return ecdsa.Sign(privateKey, opts.Digest).Serialize(), nil
}

// AddressFromPubKey encodes the hash160 of the serialized compressed public
// key in base58check format
func AddressFromPubKey(pubKey *btcec.PublicKey) string {
	return base58.CheckEncode(
		btcutil.Hash160(pubKey.SerializeCompressed()), AddressVersion,
	)
}

// IsAddressValid returns whether the provided string is a well formed PKH
// address. The payload is not reinterpreted beyond version and length checks.
func IsAddressValid(addr string) bool {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return false
	}
	return version == AddressVersion && len(payload) == 20
}

// HashForSigning returns the double SHA256 digest of the serialized
// transaction skeleton
func HashForSigning(buf []byte) []byte {
	return chainhash.DoubleHashB(buf)
}
