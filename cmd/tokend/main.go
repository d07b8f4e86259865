package main

import (
	"fmt"
	"os"

	"github.com/arkade-os/tokend/internal/config"
	"github.com/arkade-os/tokend/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "tokend"
	app.Usage = "programmable token ledger"
	app.Flags = append([]cli.Flag{authFlag}, config.Flags...)
	app.Commands = append(
		app.Commands,
		&createCommand,
		&updateCommand,
		&issueCommand,
		&retireCommand,
		&transferCommand,
		&openCommand,
		&closeCommand,
		&claimCommand,
		&recoverCommand,
		&loadUtxoCommand,
		&transferUtxoCommand,
		&stakeCommand,
		&unstakeCommand,
		&realizeCommand,
		&refundCommand,
		&distributeCommand,
		&balanceCommand,
		&statsCommand,
		&vestingCommand,
		&notesCommand,
		&stakeInfoCommand,
		&poolCommand,
		&refundInfoCommand,
		&keygenCommand,
		&signCommand,
	)
	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(log.Level(ctx.Int(config.LogLevel.Name)))
		return nil
	}
	app.After = func(_ *cli.Context) error {
		if svc != nil {
			svc.Stop()
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		if ledgerErr, ok := err.(errors.Error); ok {
			ledgerErr.Log().Error(ledgerErr.Error())
		}
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}
