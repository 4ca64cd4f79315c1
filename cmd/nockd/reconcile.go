package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var reconcile = cli.Command{
	Name:   "reconcile",
	Usage:  "settle in-flight transactions against the chain and release stale reservations",
	Flags:  []cli.Flag{passwordFlag},
	Action: reconcileAction,
}

func reconcileAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	if err := svc.txSvc.Reconcile(ctx.Context); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Reconciliation completed")
	return nil
}
