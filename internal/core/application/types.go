package application

import (
	"github.com/google/uuid"
	"github.com/nocknetwork/nockd/internal/core/domain"
)

// AccountInfo is the presentation view of a vault account.
type AccountInfo struct {
	Name           string
	Address        string
	Index          uint32
	DerivationKind string
	IconStyle      string
	IconColor      string
	Hidden         bool
}

func accountInfo(a domain.Account) AccountInfo {
	return AccountInfo{
		Name:           a.Name,
		Address:        a.Address,
		Index:          a.Index,
		DerivationKind: a.DerivationKind,
		IconStyle:      a.IconStyle,
		IconColor:      a.IconColor,
		Hidden:         a.Hidden,
	}
}

// WalletInfo describes the unlocked wallet: its visible accounts and the one
// currently selected.
type WalletInfo struct {
	Accounts       []AccountInfo
	CurrentAccount AccountInfo
}

// InitWalletReply carries the data a freshly created wallet must show the
// user exactly once: the first address and the mnemonic to back up.
type InitWalletReply struct {
	Address  string
	Mnemonic []string
}

// Balance aggregates the note values of one account in nicks.
type Balance struct {
	Available        uint64
	InFlightOutgoing uint64
	ExpectedChange   uint64
	Total            uint64
}

// SendRequest asks for a payment from the current account.
type SendRequest struct {
	Recipient    string
	Amount       uint64
	NicksPerByte uint64
}

// SweepRequest asks for the whole balance of the current account to be sent
// with no change output.
type SweepRequest struct {
	Recipient    string
	NicksPerByte uint64
}

// SendReply reports a broadcast send attempt.
type SendReply struct {
	ID        uuid.UUID
	ChainTxID string
	Tx        domain.WalletTransaction
}

// FeeEstimate is the result of a dry-run build: the exact fee the selected
// shape would pay, with the selection that produced it.
type FeeEstimate struct {
	Fee       uint64
	NumInputs int
	Amount    uint64
}
