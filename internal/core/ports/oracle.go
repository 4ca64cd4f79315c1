package ports

import (
	"context"

	"github.com/nocknetwork/nockd/pkg/wallet"
)

// SignTransactionRequest carries everything the oracle needs to produce a
// signature: the opaque key handle of the unlocked wallet and the derivation
// coordinates recorded for the spending account.
type SignTransactionRequest struct {
	Signer         *wallet.Wallet
	DerivationKind string
	AccountIndex   uint32
	Skeleton       *wallet.TxSkeleton
}

// SigningOracle turns a transaction skeleton into a signed transaction. The
// core never touches raw private keys, it only forwards the key handle it
// got from the unlocked vault.
type SigningOracle interface {
	SignTransaction(
		ctx context.Context, req SignTransactionRequest,
	) (*wallet.SignedTx, error)
	Hash(buf []byte) []byte
}
