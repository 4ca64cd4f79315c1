package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var getwalletinfo = cli.Command{
	Name:   "info",
	Usage:  "show the accounts of the wallet",
	Flags:  []cli.Flag{passwordFlag},
	Action: getWalletInfoAction,
}

func getWalletInfoAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	info, err := svc.walletSvc.UnlockWallet(ctx.Context, ctx.String("password"))
	if err != nil {
		return err
	}

	fmt.Println()
	for _, account := range info.Accounts {
		marker := " "
		if account.Index == info.CurrentAccount.Index {
			marker = "*"
		}
		fmt.Printf(
			"%s %d  %-20s %s  [%s %s]\n",
			marker, account.Index, account.Name, account.Address,
			account.IconStyle, account.IconColor,
		)
	}
	return nil
}
