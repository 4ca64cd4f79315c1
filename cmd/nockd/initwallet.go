package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var initwallet = cli.Command{
	Name:  "init",
	Usage: "initialize the wallet with a password and an optional mnemonic",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "the space separated mnemonic to restore from, a new one is generated if omitted",
		},
	},
	Action: initWalletAction,
}

func initWalletAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	var mnemonic []string
	if m := strings.TrimSpace(ctx.String("mnemonic")); len(m) > 0 {
		mnemonic = strings.Fields(m)
	}

	reply, err := svc.walletSvc.InitWallet(
		ctx.Context, mnemonic, ctx.String("password"),
	)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Wallet initialized")
	fmt.Printf("First address: %s\n", reply.Address)
	if len(ctx.String("mnemonic")) <= 0 {
		fmt.Println()
		fmt.Println("Write down the mnemonic, it is shown only once:")
		fmt.Println(strings.Join(reply.Mnemonic, " "))
	}
	return nil
}
