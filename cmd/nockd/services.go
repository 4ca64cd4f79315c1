package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/config"
	"github.com/nocknetwork/nockd/internal/core/application"
	chainexplorer "github.com/nocknetwork/nockd/internal/infrastructure/chain"
	"github.com/nocknetwork/nockd/internal/infrastructure/oracle"
	dbbadger "github.com/nocknetwork/nockd/internal/infrastructure/storage/db/badger"
)

// appServices bundles everything a command needs: the application services
// and the cleanup releasing the underlying stores.
type appServices struct {
	walletSvc application.WalletService
	txSvc     application.TransactionService
	cleanup   func()
}

// getServices wires config, storage, chain source and oracle together. Every
// command goes through here, the wallet state lives in the badger stores
// under the configured datadir.
func getServices(withChain bool) (*appServices, error) {
	if err := config.InitConfig(); err != nil {
		return nil, err
	}
	setLogLevel(config.GetInt(config.LogLevelKey))

	repoManager, err := dbbadger.NewRepoManager(config.GetDbDir(), nil)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	walletSvc := application.NewWalletService(
		repoManager.VaultRepository(),
		repoManager.NoteRepository(),
		repoManager.TransactionRepository(),
		repoManager.SyncRepository(),
	)

	svc := &appServices{
		walletSvc: walletSvc,
		cleanup:   repoManager.Close,
	}

	if withChain {
		chainSvc, err := chainexplorer.NewService(
			config.GetString(config.ExplorerEndpointKey),
		)
		if err != nil {
			repoManager.Close()
			return nil, err
		}
		svc.txSvc = application.NewTransactionService(
			repoManager.VaultRepository(),
			repoManager.NoteRepository(),
			repoManager.TransactionRepository(),
			repoManager.SyncRepository(),
			chainSvc,
			oracle.NewSigningOracle(),
		)
	}

	return svc, nil
}

// unlockFromFlag unlocks the vault with the password flag of the command.
// The session lasts for the lifetime of the process, which for the CLI is
// the single command being run.
func unlockFromFlag(ctx *cli.Context, svc *appServices) error {
	password := ctx.String("password")
	_, err := svc.walletSvc.UnlockWallet(ctx.Context, password)
	return err
}

func feeRateFromFlag(ctx *cli.Context) uint64 {
	if ctx.IsSet("fee-rate") {
		return ctx.Uint64("fee-rate")
	}
	return config.GetUint64(config.NicksPerByteKey)
}

var passwordFlag = &cli.StringFlag{
	Name:     "password",
	Usage:    "the password used to encrypt the wallet",
	Required: true,
}
