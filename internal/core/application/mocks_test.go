package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
	"github.com/nocknetwork/nockd/internal/infrastructure/storage/db/inmemory"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

var (
	testMnemonic = []string{
		"leave", "dice", "fine", "decrease", "dune", "ribbon", "ocean",
		"earn", "lunar", "account", "silver", "admit", "cheap", "fringe",
		"disorder", "trade", "because", "trade", "steak", "clock", "grace",
		"video", "jacket", "equal",
	}
	testPassphrase = "pw123456"
)

// mockChainService is an in-memory stand-in for the explorer. Notes are
// keyed per address and every behavior knob a test needs is a field.
type mockChainService struct {
	mtx sync.Mutex

	notes         map[string][]ports.ChainNote
	txStatuses    map[string]ports.ChainTxStatus
	failBroadcast bool
	failQuery     bool
	broadcastHex  []string
}

func newMockChainService() *mockChainService {
	return &mockChainService{
		notes:      map[string][]ports.ChainNote{},
		txStatuses: map[string]ports.ChainTxStatus{},
	}
}

func (m *mockChainService) QueryNotes(
	_ context.Context, addr string,
) ([]ports.ChainNote, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.failQuery {
		return nil, fmt.Errorf("explorer unavailable")
	}
	return m.notes[addr], nil
}

func (m *mockChainService) Broadcast(
	_ context.Context, txHex string,
) (string, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.failBroadcast {
		return "", fmt.Errorf("mempool rejected the transaction")
	}
	m.broadcastHex = append(m.broadcastHex, txHex)
	chainTxID := fmt.Sprintf("chaintx%d", len(m.broadcastHex))
	m.txStatuses[chainTxID] = ports.ChainTxStatus{Known: true}
	return chainTxID, nil
}

func (m *mockChainService) GetTxStatus(
	_ context.Context, chainTxID string,
) (ports.ChainTxStatus, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.txStatuses[chainTxID], nil
}

func (m *mockChainService) setNotes(addr string, notes []domain.Note) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	chainNotes := make([]ports.ChainNote, 0, len(notes))
	for _, n := range notes {
		chainNotes = append(chainNotes, ports.ChainNote{
			TxID:      n.TxID,
			Index:     n.Index,
			Value:     n.Value,
			Address:   n.Owner,
			Origin:    n.Origin,
			Confirmed: n.Confirmed,
		})
	}
	m.notes[addr] = chainNotes
}

func (m *mockChainService) setTxStatus(chainTxID string, status ports.ChainTxStatus) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.txStatuses[chainTxID] = status
}

// mockSigningOracle signs for real through the wallet handle, with an
// optional forced failure.
type mockSigningOracle struct {
	failSigning bool
}

func (m *mockSigningOracle) SignTransaction(
	_ context.Context, req ports.SignTransactionRequest,
) (*wallet.SignedTx, error) {
	if m.failSigning {
		return nil, fmt.Errorf("signing device unavailable")
	}
	if req.Signer == nil {
		return nil, domain.ErrKeysUnavailable
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

func (m *mockSigningOracle) Hash(buf []byte) []byte {
	return wallet.HashForSigning(buf)
}

// testServices wires a fully functional wallet over in-memory storage and
// mocked chain boundaries.
type testServices struct {
	walletSvc WalletService
	txSvc     TransactionService
	repos     ports.RepoManager
	chainSvc  *mockChainService
	oracle    *mockSigningOracle
}

func newTestServices() *testServices {
	repos := inmemory.NewRepoManager()
	chainSvc := newMockChainService()
	signingOracle := &mockSigningOracle{}

	walletSvc := NewWalletService(
		repos.VaultRepository(),
		repos.NoteRepository(),
		repos.TransactionRepository(),
		repos.SyncRepository(),
	)
	txSvc := NewTransactionService(
		repos.VaultRepository(),
		repos.NoteRepository(),
		repos.TransactionRepository(),
		repos.SyncRepository(),
		chainSvc,
		signingOracle,
	)

	return &testServices{
		walletSvc: walletSvc,
		txSvc:     txSvc,
		repos:     repos,
		chainSvc:  chainSvc,
		oracle:    signingOracle,
	}
}

// initFundedWallet initializes a wallet and seeds the first account with the
// given note values, both locally and on the mocked chain. It returns the
// account address.
func (s *testServices) initFundedWallet(
	ctx context.Context, values []uint64,
) (string, error) {
	reply, err := s.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	if err != nil {
		return "", err
	}

	notes := make([]domain.Note, 0, len(values))
	for i, value := range values {
		notes = append(notes, domain.NewNote(
			fmt.Sprintf("fundingtx%d", i), 0, value, reply.Address, "transfer",
		))
	}
	if err := s.repos.NoteRepository().AddNotes(ctx, notes); err != nil {
		return "", err
	}
	s.chainSvc.setNotes(reply.Address, notes)

	return reply.Address, nil
}

// newRecipientAddress derives a throwaway address unrelated to the wallet
// under test.
func newRecipientAddress() (string, error) {
	w, err := wallet.NewWallet(wallet.NewWalletOpts{EntropySize: 128})
	if err != nil {
		return "", err
	}
	return w.DeriveAccountAddress(wallet.DeriveAccountKeyOpts{
		DerivationKind: wallet.DerivationKindMaster,
		AccountIndex:   0,
	})
}
