package oracle

import (
	"context"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

type signingOracle struct{}

// NewSigningOracle returns the in-process ports.SigningOracle. It derives
// the account key from the unlocked wallet handle, signs the skeleton digest
// and attaches the compressed public key for verification.
func NewSigningOracle() ports.SigningOracle {
	return &signingOracle{}
}

func (o *signingOracle) SignTransaction(
	ctx context.Context, req ports.SignTransactionRequest,
) (*wallet.SignedTx, error) {
	if req.Signer == nil {
		return nil, domain.ErrKeysUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	digest, err := req.Skeleton.Digest()
	if err != nil {
		return nil, err
	}

	signature, err := req.Signer.SignDigest(wallet.SignDigestOpts{
		DerivationKind: req.DerivationKind,
		AccountIndex:   req.AccountIndex,
		Digest:         digest,
	})
	if err != nil {
		return nil, err
	}

	_, pubKey, err := req.Signer.DeriveAccountKeyPair(wallet.DeriveAccountKeyOpts{
		DerivationKind: req.DerivationKind,
		AccountIndex:   req.AccountIndex,
	})
	if err != nil {
		return nil, err
	}

	return &wallet.SignedTx{
		Skeleton:  *req.Skeleton,
		PubKey:    pubKey.SerializeCompressed(),
		Signature: signature,
	}, nil
}

func (o *signingOracle) Hash(buf []byte) []byte {
	return wallet.HashForSigning(buf)
}
