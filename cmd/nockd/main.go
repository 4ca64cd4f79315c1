package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "nockd"
	app.Usage = "Command line interface for the nock wallet"
	app.Commands = append(
		app.Commands,
		&genseed,
		&initwallet,
		&getwalletinfo,
		&changepassword,
		&showmnemonic,
		&resetwallet,
		&newaccount,
		&renameaccount,
		&restyleaccount,
		&hideaccount,
		&switchaccount,
		&balance,
		&send,
		&sweep,
		&estimatefee,
		&syncwallet,
		&reconcile,
		&listtransactions,
		&listnotes,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[nockd] %v\n", err)
	os.Exit(1)
}

func setLogLevel(level int) {
	log.SetLevel(log.Level(level))
}
