package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/internal/core/ports"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

// maxFeeRounds bounds the select-then-refee loop. The fee depends on the
// number of inputs, which depends on the amount-plus-fee target, so the two
// are iterated until they agree.
const maxFeeRounds = 10

// TransactionService orchestrates sends: coin selection, note reservation,
// signing, broadcast and the follow-up lifecycle transitions. All methods
// operate on the current account of the vault.
type TransactionService interface {
	Send(ctx context.Context, req SendRequest) (*SendReply, error)
	Sweep(ctx context.Context, req SweepRequest) (*SendReply, error)
	// EstimateSendFee dry-runs the selection for the given amount and
	// returns the exact fee the resulting shape would pay.
	EstimateSendFee(
		ctx context.Context, amount, nicksPerByte uint64,
	) (*FeeEstimate, error)
	// EstimateSweepFee returns the fee and the spendable amount of a
	// whole-balance send.
	EstimateSweepFee(
		ctx context.Context, nicksPerByte uint64,
	) (*FeeEstimate, error)
	// ConfirmTransaction marks a broadcast transaction as confirmed and its
	// reserved notes as spent.
	ConfirmTransaction(ctx context.Context, id uuid.UUID) error
	// Reconcile resolves the in-flight transactions left behind by a crash:
	// never-broadcast ones release their notes, broadcast ones are settled
	// against what the chain reports.
	Reconcile(ctx context.Context) error
	SyncAccount(ctx context.Context, addr string) error
	SyncAll(ctx context.Context) error
	ListTransactions(ctx context.Context) ([]domain.WalletTransaction, error)
	ListNotes(ctx context.Context) ([]domain.Note, error)
}

type transactionService struct {
	vaultRepository domain.VaultRepository
	noteRepository  domain.NoteRepository
	txRepository    domain.TransactionRepository
	syncRepository  domain.SyncRepository
	chainService    ports.ChainService
	signingOracle   ports.SigningOracle
	locker          *accountLocker
}

// NewTransactionService returns a TransactionService wired to the given
// repositories, chain source and signing oracle
func NewTransactionService(
	vaultRepository domain.VaultRepository,
	noteRepository domain.NoteRepository,
	txRepository domain.TransactionRepository,
	syncRepository domain.SyncRepository,
	chainService ports.ChainService,
	signingOracle ports.SigningOracle,
) TransactionService {
	return &transactionService{
		vaultRepository: vaultRepository,
		noteRepository:  noteRepository,
		txRepository:    txRepository,
		syncRepository:  syncRepository,
		chainService:    chainService,
		signingOracle:   signingOracle,
		locker:          newAccountLocker(),
	}
}

func (t *transactionService) Send(
	ctx context.Context, req SendRequest,
) (*SendReply, error) {
	if !wallet.IsAddressValid(req.Recipient) {
		return nil, domain.ErrInvalidAddress
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	account, signer, err := t.currentSigningAccount(ctx)
	if err != nil {
		return nil, err
	}

	// Selection and reservation run under the account lock so two
	// concurrent sends can never pick the same note. The lock is released
	// before the slow sign/broadcast path, the reservation itself keeps the
	// notes off-limits from there on.
	tx, selected, err := t.reserveForSend(ctx, account.Address, req)
	if err != nil {
		return nil, err
	}

	return t.signAndBroadcast(ctx, account, signer, tx, selected)
}

func (t *transactionService) Sweep(
	ctx context.Context, req SweepRequest,
) (*SendReply, error) {
	if !wallet.IsAddressValid(req.Recipient) {
		return nil, domain.ErrInvalidAddress
	}

	account, signer, err := t.currentSigningAccount(ctx)
	if err != nil {
		return nil, err
	}

	tx, selected, err := t.reserveForSweep(ctx, account.Address, req)
	if err != nil {
		return nil, err
	}

	return t.signAndBroadcast(ctx, account, signer, tx, selected)
}

func (t *transactionService) EstimateSendFee(
	ctx context.Context, amount, nicksPerByte uint64,
) (*FeeEstimate, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	account, err := t.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := t.noteRepository.GetAvailableNotesForAddress(ctx, account.Address)
	if err != nil {
		return nil, err
	}

	selected, fee, _, err := selectWithFee(notes, amount, nicksPerByte)
	if err != nil {
		return nil, err
	}
	return &FeeEstimate{
		Fee:       fee,
		NumInputs: len(selected),
		Amount:    amount,
	}, nil
}

func (t *transactionService) EstimateSweepFee(
	ctx context.Context, nicksPerByte uint64,
) (*FeeEstimate, error) {
	account, err := t.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := t.noteRepository.GetAvailableNotesForAddress(ctx, account.Address)
	if err != nil {
		return nil, err
	}

	selected, total := domain.SelectNotesForSweep(notes)
	if len(selected) <= 0 {
		return nil, fmt.Errorf("%w: no spendable notes", domain.ErrInsufficientFunds)
	}
	fee := wallet.EstimateFee(len(selected), 1, nicksPerByte)
	if fee >= total {
		return nil, fmt.Errorf(
			"%w: balance %d does not cover fee %d",
			domain.ErrInsufficientFunds, total, fee,
		)
	}
	return &FeeEstimate{
		Fee:       fee,
		NumInputs: len(selected),
		Amount:    total - fee,
	}, nil
}

func (t *transactionService) ConfirmTransaction(
	ctx context.Context, id uuid.UUID,
) error {
	tx, err := t.txRepository.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	switch tx.Status {
	case domain.TxStatusCodeBroadcastedUnconfirmed:
	case domain.TxStatusCodeConfirmed:
		// Re-running the confirm settles notes a previous interrupted
		// confirm may have left reserved.
		return t.noteRepository.SpendNotes(ctx, tx.InputNoteKeys)
	default:
		return domain.ErrInvalidStatusTransition
	}

	// The notes are committed before the status flips. A crash in between
	// leaves the transaction pending and the next reconcile repeats the
	// confirm, spending twice is a no-op.
	if err := t.noteRepository.SpendNotes(ctx, tx.InputNoteKeys); err != nil {
		return err
	}

	if err := t.txRepository.UpdateTransaction(
		ctx, id,
		func(tx *domain.WalletTransaction) (*domain.WalletTransaction, error) {
			if err := tx.Confirm(); err != nil {
				return nil, err
			}
			return tx, nil
		},
	); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"id":      id,
		"account": tx.AccountAddress,
	}).Info("transaction confirmed")
	return nil
}

func (t *transactionService) Reconcile(ctx context.Context) error {
	v, err := t.vaultRepository.GetVault(ctx)
	if err != nil {
		return err
	}
	// Hidden accounts can still hold in-flight transactions.
	accounts, err := v.Accounts()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, account := range accounts {
		addr := account.Address
		g.Go(func() error {
			return t.reconcileAccount(gctx, addr)
		})
	}
	return g.Wait()
}

func (t *transactionService) SyncAccount(ctx context.Context, addr string) error {
	unlock := t.locker.lock(addr)
	defer unlock()

	chainNotes, err := t.chainService.QueryNotes(ctx, addr)
	if err != nil {
		return err
	}

	notes := make([]domain.Note, 0, len(chainNotes))
	chainKeys := map[domain.NoteKey]struct{}{}
	for _, cn := range chainNotes {
		note := domain.NewNote(cn.TxID, cn.Index, cn.Value, cn.Address, cn.Origin)
		note.Confirmed = cn.Confirmed
		notes = append(notes, note)
		chainKeys[note.Key()] = struct{}{}
	}
	if err := t.noteRepository.AddNotes(ctx, notes); err != nil {
		return err
	}

	// Notes the chain no longer reports were spent elsewhere, unless they
	// are reserved by an in-flight send of ours, the reconciliation pass
	// owns those.
	local, err := t.noteRepository.GetNotesForAddress(ctx, addr)
	if err != nil {
		return err
	}
	spentKeys := make([]domain.NoteKey, 0)
	for _, n := range local {
		if n.IsSpent() || n.IsLocked() {
			continue
		}
		if _, ok := chainKeys[n.Key()]; !ok {
			spentKeys = append(spentKeys, n.Key())
		}
	}
	if len(spentKeys) > 0 {
		if err := t.noteRepository.SpendNotes(ctx, spentKeys); err != nil {
			return err
		}
	}

	if err := t.syncRepository.SetLastSync(ctx, addr, time.Now().Unix()); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"account": addr,
		"notes":   len(notes),
	}).Debug("account synced")
	return nil
}

func (t *transactionService) SyncAll(ctx context.Context) error {
	v, err := t.vaultRepository.GetVault(ctx)
	if err != nil {
		return err
	}
	accounts, err := v.Accounts()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, account := range accounts {
		addr := account.Address
		g.Go(func() error {
			return t.SyncAccount(gctx, addr)
		})
	}
	return g.Wait()
}

func (t *transactionService) ListTransactions(
	ctx context.Context,
) ([]domain.WalletTransaction, error) {
	account, err := t.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	return t.txRepository.GetAllTransactionsForAccount(ctx, account.Address)
}

func (t *transactionService) ListNotes(ctx context.Context) ([]domain.Note, error) {
	account, err := t.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	return t.noteRepository.GetNotesForAddress(ctx, account.Address)
}

func (t *transactionService) currentAccount(
	ctx context.Context,
) (*domain.Account, error) {
	v, err := t.vaultRepository.GetVault(ctx)
	if err != nil {
		return nil, err
	}
	return v.CurrentAccount()
}

func (t *transactionService) currentSigningAccount(
	ctx context.Context,
) (*domain.Account, *wallet.Wallet, error) {
	v, err := t.vaultRepository.GetVault(ctx)
	if err != nil {
		return nil, nil, err
	}
	signer, err := v.Signer()
	if err != nil {
		return nil, nil, err
	}
	account, err := v.CurrentAccount()
	if err != nil {
		return nil, nil, err
	}
	return account, signer, nil
}

// reserveForSend runs the selection loop and atomically reserves the picked
// notes under a freshly created transaction, all while holding the account
// lock.
func (t *transactionService) reserveForSend(
	ctx context.Context, addr string, req SendRequest,
) (*domain.WalletTransaction, []domain.Note, error) {
	unlock := t.locker.lock(addr)
	defer unlock()

	notes, err := t.noteRepository.GetAvailableNotesForAddress(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	selected, fee, change, err := selectWithFee(notes, req.Amount, req.NicksPerByte)
	if err != nil {
		return nil, nil, err
	}

	tx := domain.NewWalletTransaction(
		addr, req.Recipient, req.Amount, fee, change, noteKeys(selected),
	)
	if err := t.noteRepository.LockNotes(ctx, tx.InputNoteKeys, tx.ID); err != nil {
		return nil, nil, err
	}
	if err := t.txRepository.AddTransaction(ctx, tx); err != nil {
		// Reservation without a transaction record would leak the notes.
		if unlockErr := t.noteRepository.UnlockNotes(ctx, tx.InputNoteKeys); unlockErr != nil {
			log.WithError(unlockErr).Warn("could not release notes after failed reservation")
		}
		return nil, nil, err
	}
	return tx, selected, nil
}

func (t *transactionService) reserveForSweep(
	ctx context.Context, addr string, req SweepRequest,
) (*domain.WalletTransaction, []domain.Note, error) {
	unlock := t.locker.lock(addr)
	defer unlock()

	notes, err := t.noteRepository.GetAvailableNotesForAddress(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	selected, total := domain.SelectNotesForSweep(notes)
	if len(selected) <= 0 {
		return nil, nil, fmt.Errorf(
			"%w: no spendable notes", domain.ErrInsufficientFunds,
		)
	}
	fee := wallet.EstimateFee(len(selected), 1, req.NicksPerByte)
	if fee >= total {
		return nil, nil, fmt.Errorf(
			"%w: balance %d does not cover fee %d",
			domain.ErrInsufficientFunds, total, fee,
		)
	}

	tx := domain.NewWalletTransaction(
		addr, req.Recipient, total-fee, fee, 0, noteKeys(selected),
	)
	if err := t.noteRepository.LockNotes(ctx, tx.InputNoteKeys, tx.ID); err != nil {
		return nil, nil, err
	}
	if err := t.txRepository.AddTransaction(ctx, tx); err != nil {
		if unlockErr := t.noteRepository.UnlockNotes(ctx, tx.InputNoteKeys); unlockErr != nil {
			log.WithError(unlockErr).Warn("could not release notes after failed reservation")
		}
		return nil, nil, err
	}
	return tx, selected, nil
}

// signAndBroadcast completes a reserved send: it re-checks the reserved
// notes against the chain, builds and signs the skeleton and broadcasts it.
// Any failure past the reservation releases the notes and fails the
// transaction before returning.
func (t *transactionService) signAndBroadcast(
	ctx context.Context,
	account *domain.Account,
	signer *wallet.Wallet,
	tx *domain.WalletTransaction,
	selected []domain.Note,
) (*SendReply, error) {
	if err := t.verifyReservedNotes(ctx, account.Address, selected); err != nil {
		return nil, t.abortSend(ctx, tx, err)
	}

	skeleton := buildSkeleton(account.Address, tx, selected)
	signedTx, err := t.signingOracle.SignTransaction(ctx, ports.SignTransactionRequest{
		Signer:         signer,
		DerivationKind: account.DerivationKind,
		AccountIndex:   account.Index,
		Skeleton:       skeleton,
	})
	if err != nil {
		return nil, t.abortSend(ctx, tx, err)
	}
	txHex, err := signedTx.Hex()
	if err != nil {
		return nil, t.abortSend(ctx, tx, err)
	}

	chainTxID, err := t.chainService.Broadcast(ctx, txHex)
	if err != nil {
		return nil, t.abortSend(
			ctx, tx, fmt.Errorf("%w: %s", domain.ErrBroadcastFailed, err),
		)
	}

	var broadcasted domain.WalletTransaction
	if err := t.txRepository.UpdateTransaction(
		ctx, tx.ID,
		func(tx *domain.WalletTransaction) (*domain.WalletTransaction, error) {
			if err := tx.Broadcast(chainTxID, txHex); err != nil {
				return nil, err
			}
			broadcasted = *tx
			return tx, nil
		},
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"id":         tx.ID,
		"chain_txid": chainTxID,
		"amount":     tx.Amount,
		"fee":        tx.Fee,
		"inputs":     len(tx.InputNoteKeys),
	}).Info("transaction broadcast")

	return &SendReply{
		ID:        tx.ID,
		ChainTxID: chainTxID,
		Tx:        broadcasted,
	}, nil
}

// verifyReservedNotes re-fetches the address from the chain and checks every
// reserved note is still unspent there with the recorded value.
func (t *transactionService) verifyReservedNotes(
	ctx context.Context, addr string, selected []domain.Note,
) error {
	chainNotes, err := t.chainService.QueryNotes(ctx, addr)
	if err != nil {
		return err
	}
	byKey := make(map[domain.NoteKey]ports.ChainNote, len(chainNotes))
	for _, cn := range chainNotes {
		byKey[domain.NoteKey{TxID: cn.TxID, Index: cn.Index}] = cn
	}
	for _, n := range selected {
		cn, ok := byKey[n.Key()]
		if !ok {
			return fmt.Errorf(
				"%w: note %s:%d no longer unspent on chain",
				domain.ErrNoteMismatch, n.TxID, n.Index,
			)
		}
		if cn.Value != n.Value {
			return fmt.Errorf(
				"%w: note %s:%d value changed on chain",
				domain.ErrNoteMismatch, n.TxID, n.Index,
			)
		}
	}
	return nil
}

// abortSend releases the reserved notes and fails the transaction, then
// returns the cause. Cleanup runs detached from the caller's context so a
// cancelled send still releases its reservation.
func (t *transactionService) abortSend(
	ctx context.Context, tx *domain.WalletTransaction, cause error,
) error {
	cleanupCtx := context.WithoutCancel(ctx)
	if err := t.noteRepository.UnlockNotes(cleanupCtx, tx.InputNoteKeys); err != nil {
		log.WithError(err).WithField("id", tx.ID).
			Warn("could not release notes of failed transaction")
	}
	if err := t.txRepository.UpdateTransaction(
		cleanupCtx, tx.ID,
		func(tx *domain.WalletTransaction) (*domain.WalletTransaction, error) {
			if err := tx.Fail(); err != nil {
				return nil, err
			}
			return tx, nil
		},
	); err != nil {
		log.WithError(err).WithField("id", tx.ID).
			Warn("could not mark transaction as failed")
	}

	log.WithError(cause).WithField("id", tx.ID).Info("send aborted")
	return cause
}

func (t *transactionService) reconcileAccount(
	ctx context.Context, addr string,
) error {
	unlock := t.locker.lock(addr)
	defer unlock()

	pending, err := t.txRepository.GetPendingTransactionsForAccount(ctx, addr)
	if err != nil {
		return err
	}

	for i := range pending {
		tx := pending[i]
		switch tx.Status {
		case domain.TxStatusCodeCreated:
			// Never made it to broadcast, the notes go back to the pool.
			if err := t.abortSend(ctx, &tx, nil); err != nil {
				return err
			}
			log.WithField("id", tx.ID).Info("stale created transaction released")
		case domain.TxStatusCodeBroadcastedUnconfirmed:
			status, err := t.chainService.GetTxStatus(ctx, tx.ChainTxID)
			if err != nil {
				return err
			}
			if !status.Known {
				if err := t.abortSend(ctx, &tx, nil); err != nil {
					return err
				}
				log.WithField("id", tx.ID).Info("dropped transaction released")
				continue
			}
			if status.Confirmed {
				if err := t.ConfirmTransaction(ctx, tx.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// selectWithFee iterates coin selection and fee estimation until they agree
// on the transaction shape. The fee grows with the input count, which can in
// turn require more inputs, convergence is bounded by maxFeeRounds.
func selectWithFee(
	notes []domain.Note, amount, nicksPerByte uint64,
) ([]domain.Note, uint64, uint64, error) {
	fee := wallet.EstimateFee(1, 2, nicksPerByte)
	for i := 0; i < maxFeeRounds; i++ {
		selected, _, err := domain.SelectNotesForAmount(notes, amount+fee)
		if err != nil {
			return nil, 0, 0, err
		}
		total := uint64(0)
		for _, n := range selected {
			total += n.Value
		}
		numOutputs := 1
		if total > amount+fee {
			numOutputs = 2
		}
		nextFee := wallet.EstimateFee(len(selected), numOutputs, nicksPerByte)
		if nextFee == fee {
			return selected, fee, total - amount - fee, nil
		}
		fee = nextFee
	}
	return nil, 0, 0, fmt.Errorf(
		"coin selection and fee estimation did not converge after %d rounds",
		maxFeeRounds,
	)
}

func buildSkeleton(
	changeAddr string, tx *domain.WalletTransaction, selected []domain.Note,
) *wallet.TxSkeleton {
	inputs := make([]wallet.TxInput, 0, len(selected))
	for _, n := range selected {
		inputs = append(inputs, wallet.TxInput{
			TxID:  n.TxID,
			Index: n.Index,
			Value: n.Value,
			Owner: n.Owner,
		})
	}
	outputs := []wallet.TxOutput{{Address: tx.Recipient, Value: tx.Amount}}
	if tx.ExpectedChange > 0 {
		outputs = append(outputs, wallet.TxOutput{
			Address: changeAddr,
			Value:   tx.ExpectedChange,
		})
	}
	return &wallet.TxSkeleton{Inputs: inputs, Outputs: outputs}
}

func noteKeys(notes []domain.Note) []domain.NoteKey {
	keys := make([]domain.NoteKey, 0, len(notes))
	for _, n := range notes {
		keys = append(keys, n.Key())
	}
	return keys
}
