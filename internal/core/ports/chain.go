package ports

import "context"

// ChainNote is a note as reported by the chain source, before it enters the
// local note store.
type ChainNote struct {
	TxID      string
	Index     uint32
	Value     uint64
	Address   string
	Origin    string
	Confirmed bool
}

// ChainTxStatus reports what the chain source knows about a transaction.
type ChainTxStatus struct {
	Known     bool
	Confirmed bool
}

// ChainService is the balance/broadcast boundary of the wallet. The wire
// format of the underlying RPC is not the core's business.
type ChainService interface {
	// QueryNotes returns the unspent notes currently owned by the address.
	QueryNotes(ctx context.Context, addr string) ([]ChainNote, error)
	// Broadcast submits a signed transaction and returns the chain txid.
	Broadcast(ctx context.Context, txHex string) (string, error)
	// GetTxStatus reports whether the given chain txid was ever accepted and
	// whether it is confirmed. Used by the reconciliation pass.
	GetTxStatus(ctx context.Context, chainTxID string) (ChainTxStatus, error)
}
