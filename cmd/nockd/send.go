package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/core/application"
)

var feeRateFlag = &cli.Uint64Flag{
	Name:  "fee-rate",
	Usage: "the fee rate in nicks per byte, the configured default applies if omitted",
}

var send = cli.Command{
	Name:  "send",
	Usage: "send an amount of nicks from the current account",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the recipient address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to send in nicks",
			Required: true,
		},
		feeRateFlag,
	},
	Action: sendAction,
}

func sendAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	reply, err := svc.txSvc.Send(ctx.Context, application.SendRequest{
		Recipient:    ctx.String("to"),
		Amount:       ctx.Uint64("amount"),
		NicksPerByte: feeRateFromFlag(ctx),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Transaction broadcast: %s\n", reply.ChainTxID)
	fmt.Printf("Fee paid: %d nicks\n", reply.Tx.Fee)
	return nil
}
