package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var syncwallet = cli.Command{
	Name:   "sync",
	Usage:  "refresh the notes of every account from the chain",
	Flags:  []cli.Flag{passwordFlag},
	Action: syncAction,
}

func syncAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	if err := svc.txSvc.SyncAll(ctx.Context); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Wallet synced")
	return nil
}
