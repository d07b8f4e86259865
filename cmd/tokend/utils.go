package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/arkade-os/tokend/internal/config"
	"github.com/arkade-os/tokend/internal/core/application"
	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/auth"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var svc application.Service

func getService(ctx *cli.Context) (application.Service, error) {
	if svc != nil {
		return svc, nil
	}

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if notifier := cfg.Notifier(); notifier != nil {
		registerEventsLogger(notifier)
	}
	appSvc, err := cfg.AppService()
	if err != nil {
		return nil, err
	}
	svc = appSvc
	return svc, nil
}

// authContext returns a context carrying the authorizations given with the
// --auth flag or the TOKEND_AUTH env var.
func authContext(ctx *cli.Context) context.Context {
	accounts := ctx.StringSlice(authFlagName)
	if len(accounts) <= 0 {
		accounts = viper.GetStringSlice(authFlagName)
	}
	names := make([]domain.Name, 0, len(accounts))
	for _, account := range accounts {
		names = append(names, domain.Name(account))
	}
	return auth.WithAuthorizations(ctx.Context, names...)
}

func parseAsset(ctx *cli.Context, flagName string) (domain.Asset, error) {
	asset, err := domain.ParseAsset(ctx.String(flagName))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("invalid --%s: %s", flagName, err)
	}
	return asset, nil
}

func parseSymbol(ctx *cli.Context) (domain.Symbol, error) {
	symbol, err := domain.ParseSymbol(ctx.String(symbolFlagName))
	if err != nil {
		return domain.Symbol{}, fmt.Errorf("invalid --%s: %s", symbolFlagName, err)
	}
	return symbol, nil
}

func parseName(ctx *cli.Context, flagName string) domain.Name {
	return domain.Name(ctx.String(flagName))
}

func parseCode(ctx *cli.Context) domain.SymbolCode {
	return domain.SymbolCode(ctx.String(codeFlagName))
}

type utxoInput struct {
	Id        uint64 `json:"id"`
	Signature string `json:"signature"`
}

type utxoOutput struct {
	Account  string       `json:"account,omitempty"`
	PubKey   string       `json:"pubkey,omitempty"`
	Quantity domain.Asset `json:"quantity"`
}

func parseInputs(ctx *cli.Context) ([]domain.UtxoInput, error) {
	str := ctx.String(inputsFlagName)
	if len(str) <= 0 {
		return nil, nil
	}

	var inputs []utxoInput
	if err := json.Unmarshal([]byte(str), &inputs); err != nil {
		return nil, fmt.Errorf("invalid --%s: %s", inputsFlagName, err)
	}

	res := make([]domain.UtxoInput, 0, len(inputs))
	for _, in := range inputs {
		sig, err := hex.DecodeString(in.Signature)
		if err != nil {
			return nil, fmt.Errorf("invalid signature for note %d: %s", in.Id, err)
		}
		res = append(res, domain.UtxoInput{Id: in.Id, Signature: sig})
	}
	return res, nil
}

func parseOutputs(ctx *cli.Context) ([]domain.UtxoOutput, error) {
	var outputs []utxoOutput
	if err := json.Unmarshal([]byte(ctx.String(outputsFlagName)), &outputs); err != nil {
		return nil, fmt.Errorf("invalid --%s: %s", outputsFlagName, err)
	}

	res := make([]domain.UtxoOutput, 0, len(outputs))
	for _, out := range outputs {
		res = append(res, domain.UtxoOutput{
			Account:  domain.Name(out.Account),
			PubKey:   out.PubKey,
			Quantity: out.Quantity,
		})
	}
	return res, nil
}

type noteView struct {
	Id     uint64       `json:"id"`
	PubKey string       `json:"pubkey"`
	Amount domain.Asset `json:"amount"`
	Payer  string       `json:"payer"`
}

func newNoteViews(notes []domain.UtxoNote) []noteView {
	views := make([]noteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, noteView{
			Id:     note.Id,
			PubKey: note.PubKey,
			Amount: note.Amount,
			Payer:  note.Payer.String(),
		})
	}
	return views
}

type stakeView struct {
	Owner                string       `json:"owner"`
	Staked               domain.Asset `json:"staked"`
	LastDividendFraction string       `json:"last_dividend_fraction"`
}

type poolView struct {
	TotalStaked             domain.Asset `json:"total_staked"`
	TotalDividends          domain.Asset `json:"total_dividends"`
	TotalUnclaimedDividends domain.Asset `json:"total_unclaimed_dividends"`
	Fraction                string       `json:"fraction"`
}

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonBytes))
	return nil
}
