package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	wallet, err := NewWallet(NewWalletOpts{EntropySize: 256})
	require.NoError(t, err)

	signingMnemonic, err := wallet.SigningMnemonic()
	require.NoError(t, err)
	require.Len(t, signingMnemonic, 24)
	assert.True(t, isMnemonicValid(signingMnemonic))
}

func TestFailingNewMnemonic(t *testing.T) {
	tests := []int{-1, 127, 257, 130}
	for _, tt := range tests {
		_, err := NewMnemonic(NewMnemonicOpts{EntropySize: tt})
		assert.NotNil(t, err)
	}
}

func TestNewWalletFromMnemonic(t *testing.T) {
	wallet, err := NewWallet(NewWalletOpts{EntropySize: 256})
	require.NoError(t, err)

	signingMnemonic, _ := wallet.SigningMnemonic()
	otherWallet, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		SigningMnemonic: signingMnemonic,
	})
	require.NoError(t, err)
	assert.Equal(t, *wallet, *otherWallet)
}

func TestFailingNewWalletFromMnemonic(t *testing.T) {
	tests := []struct {
		opts NewWalletFromMnemonicOpts
		err  error
	}{
		{
			opts: NewWalletFromMnemonicOpts{
				SigningMnemonic: nil,
			},
			err: ErrNullMnemonic,
		},
		{
			opts: NewWalletFromMnemonicOpts{
				SigningMnemonic: strings.Split(
					"legal winner thank year wave sausage worth useful legal "+
						"winner thank yellow yellow", " ",
				),
			},
			err: ErrInvalidMnemonic,
		},
	}
	for _, tt := range tests {
		_, err := NewWalletFromMnemonic(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestWipe(t *testing.T) {
	wallet, err := NewWallet(NewWalletOpts{EntropySize: 256})
	require.NoError(t, err)

	wallet.Wipe()
	_, err = wallet.SigningMnemonic()
	require.EqualError(t, err, ErrNullMasterKey.Error())
	_, err = wallet.DeriveAccountAddress(DeriveAccountKeyOpts{
		DerivationKind: DerivationKindMaster,
	})
	require.EqualError(t, err, ErrNullMasterKey.Error())
}
