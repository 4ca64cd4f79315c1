package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/nocknetwork/nockd/internal/core/domain"
	"github.com/nocknetwork/nockd/pkg/wallet"
)

// WalletService exposes the vault lifecycle and account management. All
// mutations of the account list go through the vault's re-encrypt-and-persist
// path, accounts are never written in plain text.
type WalletService interface {
	GenSeed(ctx context.Context) ([]string, error)
	InitWallet(
		ctx context.Context, mnemonic []string, passphrase string,
	) (*InitWalletReply, error)
	UnlockWallet(ctx context.Context, passphrase string) (*WalletInfo, error)
	LockWallet(ctx context.Context) error
	ResetWallet(ctx context.Context) error
	ChangePassword(ctx context.Context, currentPassphrase, newPassphrase string) error
	GetMnemonic(ctx context.Context, passphrase string) ([]string, error)
	GetWalletInfo(ctx context.Context) (*WalletInfo, error)
	CreateAccount(ctx context.Context, name string) (*AccountInfo, error)
	SwitchAccount(ctx context.Context, index uint32) error
	RenameAccount(ctx context.Context, index uint32, name string) error
	UpdateAccountStyling(ctx context.Context, index uint32, style, color string) error
	HideAccount(ctx context.Context, index uint32) (uint32, error)
	GetBalance(ctx context.Context) (*Balance, error)
}

type walletService struct {
	vaultRepository domain.VaultRepository
	noteRepository  domain.NoteRepository
	txRepository    domain.TransactionRepository
	syncRepository  domain.SyncRepository
}

// NewWalletService returns a WalletService backed by the given repositories
func NewWalletService(
	vaultRepository domain.VaultRepository,
	noteRepository domain.NoteRepository,
	txRepository domain.TransactionRepository,
	syncRepository domain.SyncRepository,
) WalletService {
	return &walletService{
		vaultRepository: vaultRepository,
		noteRepository:  noteRepository,
		txRepository:    txRepository,
		syncRepository:  syncRepository,
	}
}

func (w *walletService) GenSeed(ctx context.Context) ([]string, error) {
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 256})
}

// InitWallet creates the vault with its first account. When no mnemonic is
// given a fresh 24-word one is generated. The vault is left unlocked, the
// user should not be asked to re-enter the passphrase they just chose.
func (w *walletService) InitWallet(
	ctx context.Context, mnemonic []string, passphrase string,
) (*InitWalletReply, error) {
	if len(mnemonic) <= 0 {
		generated, err := w.GenSeed(ctx)
		if err != nil {
			return nil, err
		}
		mnemonic = generated
	}

	var reply *InitWalletReply
	if err := w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if v.IsInitialized() {
				return nil, domain.ErrVaultAlreadyInitialized
			}
			newVault, err := domain.NewVault(mnemonic, passphrase)
			if err != nil {
				return nil, err
			}
			account, err := newVault.AccountByIndex(0)
			if err != nil {
				return nil, err
			}
			reply = &InitWalletReply{
				Address:  account.Address,
				Mnemonic: mnemonic,
			}
			return newVault, nil
		},
	); err != nil {
		return nil, err
	}

	log.Info("wallet initialized")
	return reply, nil
}

func (w *walletService) UnlockWallet(
	ctx context.Context, passphrase string,
) (*WalletInfo, error) {
	var info *WalletInfo
	if err := w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if !v.IsInitialized() {
				return nil, domain.ErrVaultNotInitialized
			}
			if err := v.Unlock(passphrase); err != nil {
				return nil, err
			}
			walletInfo, err := walletInfoForVault(v)
			if err != nil {
				return nil, err
			}
			info = walletInfo
			return v, nil
		},
	); err != nil {
		return nil, err
	}
	return info, nil
}

func (w *walletService) LockWallet(ctx context.Context) error {
	return w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			v.Lock()
			return v, nil
		},
	)
}

// ResetWallet erases every persisted piece of wallet state. It exists for
// passphrase-loss recovery and must only run after explicit confirmation.
func (w *walletService) ResetWallet(ctx context.Context) error {
	if err := w.vaultRepository.Reset(ctx); err != nil {
		return err
	}
	if err := w.noteRepository.Reset(ctx); err != nil {
		return err
	}
	if err := w.txRepository.Reset(ctx); err != nil {
		return err
	}
	if err := w.syncRepository.Reset(ctx); err != nil {
		return err
	}
	log.Warn("wallet reset, all local state erased")
	return nil
}

func (w *walletService) ChangePassword(
	ctx context.Context, currentPassphrase, newPassphrase string,
) error {
	return w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if !v.IsInitialized() {
				return nil, domain.ErrVaultNotInitialized
			}
			if err := v.ChangePassphrase(currentPassphrase, newPassphrase); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

func (w *walletService) GetMnemonic(
	ctx context.Context, passphrase string,
) ([]string, error) {
	v, err := w.vaultRepository.GetVault(ctx)
	if err != nil {
		return nil, err
	}
	return v.GetMnemonic(passphrase)
}

func (w *walletService) GetWalletInfo(ctx context.Context) (*WalletInfo, error) {
	v, err := w.vaultRepository.GetVault(ctx)
	if err != nil {
		return nil, err
	}
	return walletInfoForVault(v)
}

func (w *walletService) CreateAccount(
	ctx context.Context, name string,
) (*AccountInfo, error) {
	var info AccountInfo
	if err := w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			account, err := v.CreateAccount(name)
			if err != nil {
				return nil, err
			}
			info = accountInfo(*account)
			return v, nil
		},
	); err != nil {
		return nil, err
	}

	log.WithField("index", info.Index).Info("account created")
	return &info, nil
}

func (w *walletService) SwitchAccount(ctx context.Context, index uint32) error {
	return w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.SwitchAccount(index); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

func (w *walletService) RenameAccount(
	ctx context.Context, index uint32, name string,
) error {
	return w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.RenameAccount(index, name); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

func (w *walletService) UpdateAccountStyling(
	ctx context.Context, index uint32, style, color string,
) error {
	return w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.UpdateAccountStyling(index, style, color); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

func (w *walletService) HideAccount(
	ctx context.Context, index uint32,
) (uint32, error) {
	var switchedTo uint32
	if err := w.vaultRepository.UpdateVault(
		ctx,
		func(v *domain.Vault) (*domain.Vault, error) {
			current, err := v.HideAccount(index)
			if err != nil {
				return nil, err
			}
			switchedTo = current
			return v, nil
		},
	); err != nil {
		return 0, err
	}
	return switchedTo, nil
}

// GetBalance aggregates the notes of the current account: available to
// spend, locked by in-flight sends, and the change expected back from them.
func (w *walletService) GetBalance(ctx context.Context) (*Balance, error) {
	v, err := w.vaultRepository.GetVault(ctx)
	if err != nil {
		return nil, err
	}
	account, err := v.CurrentAccount()
	if err != nil {
		return nil, err
	}

	available, err := w.noteRepository.GetAvailableBalance(ctx, account.Address)
	if err != nil {
		return nil, err
	}
	lockedNotes, err := w.noteRepository.GetLockedNotesForAddress(ctx, account.Address)
	if err != nil {
		return nil, err
	}
	inFlight := uint64(0)
	for _, n := range lockedNotes {
		inFlight += n.Value
	}

	pending, err := w.txRepository.GetPendingTransactionsForAccount(ctx, account.Address)
	if err != nil {
		return nil, err
	}
	expectedChange := uint64(0)
	for _, tx := range pending {
		expectedChange += tx.ExpectedChange
	}

	return &Balance{
		Available:        available,
		InFlightOutgoing: inFlight,
		ExpectedChange:   expectedChange,
		Total:            available + inFlight,
	}, nil
}

func walletInfoForVault(v *domain.Vault) (*WalletInfo, error) {
	accounts, err := v.VisibleAccounts()
	if err != nil {
		return nil, err
	}
	current, err := v.CurrentAccount()
	if err != nil {
		return nil, err
	}

	infos := make([]AccountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, accountInfo(a))
	}
	return &WalletInfo{
		Accounts:       infos,
		CurrentAccount: accountInfo(*current),
	}, nil
}
