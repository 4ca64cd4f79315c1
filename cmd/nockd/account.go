package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var accountIndexFlag = &cli.UintFlag{
	Name:     "index",
	Usage:    "the index of the account",
	Required: true,
}

var newaccount = cli.Command{
	Name:  "newaccount",
	Usage: "derive a new account",
	Flags: []cli.Flag{
		passwordFlag,
		&cli.StringFlag{
			Name:  "name",
			Usage: "the display name of the account, a default one is used if omitted",
		},
	},
	Action: newAccountAction,
}

func newAccountAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	account, err := svc.walletSvc.CreateAccount(ctx.Context, ctx.String("name"))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Account %d created\n", account.Index)
	fmt.Printf("Address: %s\n", account.Address)
	return nil
}

var renameaccount = cli.Command{
	Name:  "renameaccount",
	Usage: "rename an account",
	Flags: []cli.Flag{
		passwordFlag,
		accountIndexFlag,
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the new display name",
			Required: true,
		},
	},
	Action: renameAccountAction,
}

func renameAccountAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	if err := svc.walletSvc.RenameAccount(
		ctx.Context, uint32(ctx.Uint("index")), ctx.String("name"),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account renamed")
	return nil
}

var restyleaccount = cli.Command{
	Name:  "restyleaccount",
	Usage: "change the icon style and color of an account",
	Flags: []cli.Flag{
		passwordFlag,
		accountIndexFlag,
		&cli.StringFlag{
			Name:     "style",
			Usage:    "the icon style",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "color",
			Usage:    "the icon color in hex format",
			Required: true,
		},
	},
	Action: restyleAccountAction,
}

func restyleAccountAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	if err := svc.walletSvc.UpdateAccountStyling(
		ctx.Context, uint32(ctx.Uint("index")),
		ctx.String("style"), ctx.String("color"),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account restyled")
	return nil
}

var hideaccount = cli.Command{
	Name:  "hideaccount",
	Usage: "hide an account from the wallet views",
	Flags: []cli.Flag{
		passwordFlag,
		accountIndexFlag,
	},
	Action: hideAccountAction,
}

func hideAccountAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	current, err := svc.walletSvc.HideAccount(ctx.Context, uint32(ctx.Uint("index")))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Account hidden, current account is now %d\n", current)
	return nil
}

var switchaccount = cli.Command{
	Name:  "switchaccount",
	Usage: "make another account the current one",
	Flags: []cli.Flag{
		passwordFlag,
		accountIndexFlag,
	},
	Action: switchAccountAction,
}

func switchAccountAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	if err := svc.walletSvc.SwitchAccount(
		ctx.Context, uint32(ctx.Uint("index")),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account switched")
	return nil
}
