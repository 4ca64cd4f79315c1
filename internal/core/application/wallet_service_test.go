package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

func TestInitWallet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	reply, err := svc.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	require.NoError(t, err)
	require.NotNil(t, reply)
	require.NotEmpty(t, reply.Address)
	require.Equal(t, testMnemonic, reply.Mnemonic)

	// Initializing twice must not overwrite the seed.
	_, err = svc.walletSvc.InitWallet(ctx, nil, "otherpassword")
	require.EqualError(t, err, domain.ErrVaultAlreadyInitialized.Error())

	info, err := svc.walletSvc.GetWalletInfo(ctx)
	require.NoError(t, err)
	require.Len(t, info.Accounts, 1)
	require.Equal(t, reply.Address, info.CurrentAccount.Address)
}

func TestInitWalletWithGeneratedMnemonic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	reply, err := svc.walletSvc.InitWallet(ctx, nil, testPassphrase)
	require.NoError(t, err)
	require.Len(t, reply.Mnemonic, 24)
	require.NotEmpty(t, reply.Address)
}

func TestUnlockAndLockWallet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	_, err := svc.walletSvc.UnlockWallet(ctx, testPassphrase)
	require.EqualError(t, err, domain.ErrVaultNotInitialized.Error())

	_, err = svc.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	require.NoError(t, err)

	require.NoError(t, svc.walletSvc.LockWallet(ctx))

	_, err = svc.walletSvc.GetWalletInfo(ctx)
	require.EqualError(t, err, domain.ErrVaultMustBeUnlocked.Error())

	_, err = svc.walletSvc.UnlockWallet(ctx, "wrongpassword")
	require.EqualError(t, err, domain.ErrInvalidPassphrase.Error())

	info, err := svc.walletSvc.UnlockWallet(ctx, testPassphrase)
	require.NoError(t, err)
	require.Len(t, info.Accounts, 1)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	_, err := svc.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	require.NoError(t, err)

	newPassphrase := "newpw12345"
	require.NoError(
		t, svc.walletSvc.ChangePassword(ctx, testPassphrase, newPassphrase),
	)

	require.NoError(t, svc.walletSvc.LockWallet(ctx))

	_, err = svc.walletSvc.UnlockWallet(ctx, testPassphrase)
	require.EqualError(t, err, domain.ErrInvalidPassphrase.Error())

	_, err = svc.walletSvc.UnlockWallet(ctx, newPassphrase)
	require.NoError(t, err)

	mnemonic, err := svc.walletSvc.GetMnemonic(ctx, newPassphrase)
	require.NoError(t, err)
	require.Equal(t, testMnemonic, mnemonic)
}

func TestResetWallet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	_, err := svc.initFundedWallet(ctx, []uint64{10000})
	require.NoError(t, err)

	require.NoError(t, svc.walletSvc.ResetWallet(ctx))

	_, err = svc.walletSvc.GetWalletInfo(ctx)
	require.EqualError(t, err, domain.ErrVaultNotInitialized.Error())

	notes, err := svc.repos.NoteRepository().GetAllNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)

	// A fresh wallet can be created after the reset.
	_, err = svc.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	require.NoError(t, err)
}

func TestAccountManagement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	reply, err := svc.walletSvc.InitWallet(ctx, testMnemonic, testPassphrase)
	require.NoError(t, err)

	account, err := svc.walletSvc.CreateAccount(ctx, "savings")
	require.NoError(t, err)
	require.Equal(t, uint32(1), account.Index)
	require.Equal(t, "savings", account.Name)
	require.NotEqual(t, reply.Address, account.Address)

	require.NoError(t, svc.walletSvc.SwitchAccount(ctx, account.Index))
	info, err := svc.walletSvc.GetWalletInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, account.Address, info.CurrentAccount.Address)

	require.NoError(t, svc.walletSvc.RenameAccount(ctx, account.Index, "cold storage"))
	require.NoError(
		t, svc.walletSvc.UpdateAccountStyling(ctx, account.Index, "star", "#F7931A"),
	)

	current, err := svc.walletSvc.HideAccount(ctx, account.Index)
	require.NoError(t, err)
	require.Equal(t, uint32(0), current)

	info, err = svc.walletSvc.GetWalletInfo(ctx)
	require.NoError(t, err)
	require.Len(t, info.Accounts, 1)

	_, err = svc.walletSvc.HideAccount(ctx, 0)
	require.EqualError(t, err, domain.ErrCannotHideLastAccount.Error())
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestServices()

	_, err := svc.initFundedWallet(ctx, []uint64{40000, 25000})
	require.NoError(t, err)

	b, err := svc.walletSvc.GetBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(65000), b.Available)
	require.Zero(t, b.InFlightOutgoing)
	require.Zero(t, b.ExpectedChange)
	require.Equal(t, uint64(65000), b.Total)
}
