package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

var listtransactions = cli.Command{
	Name:   "listtransactions",
	Usage:  "list the transactions of the current account",
	Flags:  []cli.Flag{passwordFlag},
	Action: listTransactionsAction,
}

func listTransactionsAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	txs, err := svc.txSvc.ListTransactions(ctx.Context)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, tx := range txs {
		fmt.Printf(
			"%s  %-12s %10d nicks (fee %d)  -> %s\n",
			tx.ID, statusString(tx.Status), tx.Amount, tx.Fee, tx.Recipient,
		)
	}
	return nil
}

func statusString(status int) string {
	switch status {
	case domain.TxStatusCodeCreated:
		return "created"
	case domain.TxStatusCodeBroadcastedUnconfirmed:
		return "broadcast"
	case domain.TxStatusCodeConfirmed:
		return "confirmed"
	case domain.TxStatusCodeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
