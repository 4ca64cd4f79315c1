package wallet

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMnemonic = strings.Split(
	"leave dice fine decrease dune ribbon ocean earn lunar account silver "+
		"admit cheap fringe disorder trade because trade steak clock grace "+
		"video jacket equal", " ",
)

func TestDeriveAccountAddress(t *testing.T) {
	wallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		SigningMnemonic: testMnemonic,
	})
	require.NoError(t, err)

	masterAddr, err := wallet.DeriveAccountAddress(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindMaster,
	})
	require.NoError(t, err)
	assert.True(t, IsAddressValid(masterAddr))

	childAddr, err := wallet.DeriveAccountAddress(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindChild,
		AccountIndex:   1,
	})
	require.NoError(t, err)
	assert.True(t, IsAddressValid(childAddr))
	assert.NotEqual(t, masterAddr, childAddr)

	// the derivation kind is part of the account identity: child derivation
	// at index 0 must not collide with the master-key address of account 0.
	childZeroAddr, err := wallet.DeriveAccountAddress(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindChild,
		AccountIndex:   0,
	})
	require.NoError(t, err)
	assert.NotEqual(t, masterAddr, childZeroAddr)

	sameAddr, err := wallet.DeriveAccountAddress(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindChild,
		AccountIndex:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, childAddr, sameAddr)
}

func TestFailingDeriveAccountAddress(t *testing.T) {
	wallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		SigningMnemonic: testMnemonic,
	})
	require.NoError(t, err)

	tests := []struct {
		opts DeriveAccountKeyOpts
		err  error
	}{
		{
			opts: DeriveAccountKeyOpts{DerivationKind: "grandparent"},
			err:  ErrInvalidDerivationKind,
		},
		{
			opts: DeriveAccountKeyOpts{
				DerivationKind: DerivationKindChild,
				AccountIndex:   MaxHardenedValue + 1,
			},
			err: ErrInvalidAccountIndex,
		},
	}
	for _, tt := range tests {
		_, err := wallet.DeriveAccountAddress(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestSignDigest(t *testing.T) {
	wallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		SigningMnemonic: testMnemonic,
	})
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("tx skeleton"))
	sig, err := wallet.SignDigest(SignDigestOpts{
		DerivationKind: DerivationKindChild,
		AccountIndex:   2,
		Digest:         digest[:],
	})
	require.NoError(t, err)

	parsedSig, err := ecdsa.ParseDERSignature(sig)
	require.NoError(t, err)

	_, publicKey, err := wallet.DeriveAccountKeyPair(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindChild,
		AccountIndex:   2,
	})
	require.NoError(t, err)
	assert.True(t, parsedSig.Verify(digest[:], publicKey))
}

func TestFailingSignDigest(t *testing.T) {
	wallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		SigningMnemonic: testMnemonic,
	})
	require.NoError(t, err)

	_, err = wallet.SignDigest(SignDigestOpts{
		DerivationKind: DerivationKindMaster,
		Digest:         []byte("too short"),
	})
	require.EqualError(t, err, ErrInvalidDigest.Error())
}

func TestIsAddressValid(t *testing.T) {
	assert.False(t, IsAddressValid(""))
	assert.False(t, IsAddressValid("not-an-address"))
	assert.False(t, IsAddressValid("1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"))
}
