package main

import (
	"github.com/urfave/cli/v2"
)

const (
	authFlagName      = "auth"
	ownerFlagName     = "owner"
	fromFlagName      = "from"
	toFlagName        = "to"
	payerFlagName     = "payer"
	issuerFlagName    = "issuer"
	quantityFlagName  = "quantity"
	maxSupplyFlagName = "max-supply"
	symbolFlagName    = "symbol"
	memoFlagName      = "memo"
	pubkeyFlagName    = "pubkey"
	prvkeyFlagName    = "prvkey"
	idFlagName        = "id"
	inputsFlagName    = "inputs"
	outputsFlagName   = "outputs"
	accountFlagName   = "account"
	codeFlagName      = "code"
)

var (
	authFlag = &cli.StringSliceFlag{
		Name:    authFlagName,
		Usage:   "accounts authorizing the operation",
		EnvVars: []string{"TOKEND_AUTH"},
	}
	ownerFlag = &cli.StringFlag{
		Name:     ownerFlagName,
		Usage:    "owner account",
		Required: true,
	}
	fromFlag = &cli.StringFlag{
		Name:     fromFlagName,
		Usage:    "account sending the funds",
		Required: true,
	}
	toFlag = &cli.StringFlag{
		Name:     toFlagName,
		Usage:    "account receiving the funds",
		Required: true,
	}
	payerFlag = &cli.StringFlag{
		Name:     payerFlagName,
		Usage:    "account paying for the record or receiving the utxo transfer fee",
		Required: true,
	}
	issuerFlag = &cli.StringFlag{
		Name:     issuerFlagName,
		Usage:    "account allowed to issue and retire the token",
		Required: true,
	}
	quantityFlag = &cli.StringFlag{
		Name:     quantityFlagName,
		Usage:    "asset quantity, eg. \"10.0000 PEOS\"",
		Required: true,
	}
	maxSupplyFlag = &cli.StringFlag{
		Name:     maxSupplyFlagName,
		Usage:    "maximum supply of the token, eg. \"1000000.0000 PEOS\"",
		Required: true,
	}
	symbolFlag = &cli.StringFlag{
		Name:     symbolFlagName,
		Usage:    "token symbol in the form <precision>,<CODE>, eg. \"4,PEOS\"",
		Required: true,
	}
	memoFlag = &cli.StringFlag{
		Name:  memoFlagName,
		Usage: "memo attached to the operation, at most 256 bytes",
	}
	pubkeyFlag = &cli.StringFlag{
		Name:  pubkeyFlagName,
		Usage: "hex encoded x-only public key the notes are bound to",
	}
	prvkeyFlag = &cli.StringFlag{
		Name:     prvkeyFlagName,
		Usage:    "hex encoded private key of the note",
		Required: true,
	}
	noteIdFlag = &cli.Uint64Flag{
		Name:  idFlagName,
		Usage: "id of the note",
	}
	inputsFlag = &cli.StringFlag{
		Name:  inputsFlagName,
		Usage: "JSON encoded notes to spend, eg. [{\"id\": 1, \"signature\": \"<hex>\"}]",
	}
	outputsFlag = &cli.StringFlag{
		Name: outputsFlagName,
		Usage: "JSON encoded outputs, eg. [{\"account\": \"bob\", \"quantity\": \"1.0000 PEOS\"}, " +
			"{\"pubkey\": \"<hex>\", \"quantity\": \"2.0000 PEOS\"}]",
		Required: true,
	}
	codeFlag = &cli.StringFlag{
		Name:     codeFlagName,
		Usage:    "token symbol code, eg. \"PEOS\"",
		Required: true,
	}
	accountFlag = &cli.StringFlag{
		Name:     accountFlagName,
		Usage:    "vesting account",
		Required: true,
	}
)
