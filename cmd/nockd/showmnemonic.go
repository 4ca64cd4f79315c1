package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var showmnemonic = cli.Command{
	Name:   "mnemonic",
	Usage:  "reveal the mnemonic of the wallet",
	Flags:  []cli.Flag{passwordFlag},
	Action: showMnemonicAction,
}

func showMnemonicAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	mnemonic, err := svc.walletSvc.GetMnemonic(ctx.Context, ctx.String("password"))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(strings.Join(mnemonic, " "))
	return nil
}
