package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var resetwallet = cli.Command{
	Name:  "reset",
	Usage: "erase the wallet and all its local state",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "confirm the reset, funds are only recoverable with the mnemonic",
		},
	},
	Action: resetWalletAction,
}

func resetWalletAction(ctx *cli.Context) error {
	if !ctx.Bool("yes") {
		return fmt.Errorf(
			"reset erases the encrypted seed and every account, " +
				"run again with --yes to confirm",
		)
	}

	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := svc.walletSvc.ResetWallet(ctx.Context); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Wallet erased")
	return nil
}
