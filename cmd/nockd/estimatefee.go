package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/core/application"
)

var estimatefee = cli.Command{
	Name:  "estimatefee",
	Usage: "estimate the fee of a send without broadcasting anything",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.Uint64Flag{
			Name:  "amount",
			Usage: "the amount to send in nicks, ignored with --sweep",
		},
		&cli.BoolFlag{
			Name:  "sweep",
			Usage: "estimate a whole-balance send instead",
		},
		feeRateFlag,
	},
	Action: estimateFeeAction,
}

func estimateFeeAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	feeRate := feeRateFromFlag(ctx)

	var estimate *application.FeeEstimate
	if ctx.Bool("sweep") {
		estimate, err = svc.txSvc.EstimateSweepFee(ctx.Context, feeRate)
	} else {
		estimate, err = svc.txSvc.EstimateSendFee(
			ctx.Context, ctx.Uint64("amount"), feeRate,
		)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Fee: %d nicks\n", estimate.Fee)
	fmt.Printf("Inputs: %d\n", estimate.NumInputs)
	fmt.Printf("Amount: %d nicks\n", estimate.Amount)
	return nil
}
