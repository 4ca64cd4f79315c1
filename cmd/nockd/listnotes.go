package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nocknetwork/nockd/internal/core/domain"
)

var listnotes = cli.Command{
	Name:   "listnotes",
	Usage:  "list the notes of the current account",
	Flags:  []cli.Flag{passwordFlag},
	Action: listNotesAction,
}

func listNotesAction(ctx *cli.Context) error {
	svc, err := getServices(true)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	if err := unlockFromFlag(ctx, svc); err != nil {
		return err
	}

	notes, err := svc.txSvc.ListNotes(ctx.Context)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, note := range notes {
		fmt.Printf(
			"%s:%d  %10d nicks  %s\n",
			note.TxID, note.Index, note.Value, noteState(note),
		)
	}
	return nil
}

func noteState(note domain.Note) string {
	switch {
	case note.IsSpent():
		return "spent"
	case note.IsLocked():
		return "in flight"
	case !note.IsConfirmed():
		return "unconfirmed"
	default:
		return "available"
	}
}
