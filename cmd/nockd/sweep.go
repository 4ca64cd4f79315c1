package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/core/application"
)

var sweep = cli.Command{
	Name:  "sweep",
	Usage: "send the whole balance of the current account",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the recipient address",
			Required: true,
		},
		feeRateFlag,
	},
	Action: sweepAction,
}

func sweepAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	reply, err := svc.txSvc.Sweep(ctx.Context, application.SweepRequest{
		Recipient:    ctx.String("to"),
		NicksPerByte: feeRateFromFlag(ctx),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Transaction broadcast: %s\n", reply.ChainTxID)
	fmt.Printf("Swept %d nicks, fee paid: %d nicks\n", reply.Tx.Amount, reply.Tx.Fee)
	return nil
}
