package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var changepassword = cli.Command{
	Name:  "changepassword",
	Usage: "re-encrypt the wallet with a new password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "current",
			Usage:    "the current password",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "new",
			Usage:    "the new password",
			Required: true,
		},
	},
	Action: changePasswordAction,
}

func changePasswordAction(ctx *cli.Context) error {
	svc, err := getServices(false)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := svc.walletSvc.ChangePassword(
		ctx.Context, ctx.String("current"), ctx.String("new"),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Password changed")
	return nil
}
