package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/pkg/nickutil"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "show the balance of the current account",
	Flags:  []cli.Flag{passwordFlag},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	b, err := svc.walletSvc.GetBalance(ctx.Context)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Available:       %s NOCK (%d nicks)\n", nickutil.FromNicks(b.Available), b.Available)
	fmt.Printf("In flight:       %s NOCK (%d nicks)\n", nickutil.FromNicks(b.InFlightOutgoing), b.InFlightOutgoing)
	fmt.Printf("Expected change: %s NOCK (%d nicks)\n", nickutil.FromNicks(b.ExpectedChange), b.ExpectedChange)
	fmt.Printf("Total:           %s NOCK (%d nicks)\n", nickutil.FromNicks(b.Total), b.Total)
	return nil
}
