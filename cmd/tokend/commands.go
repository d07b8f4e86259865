package main

import (
	"encoding/hex"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/signer"
	"github.com/urfave/cli/v2"
)

var (
	createCommand = cli.Command{
		Name:   "create",
		Usage:  "Create a new token with the given issuer and max supply",
		Flags:  []cli.Flag{issuerFlag, maxSupplyFlag},
		Action: createAction,
	}
	updateCommand = cli.Command{
		Name:   "update",
		Usage:  "Change the issuer and max supply of a token",
		Flags:  []cli.Flag{issuerFlag, maxSupplyFlag},
		Action: updateAction,
	}
	issueCommand = cli.Command{
		Name:   "issue",
		Usage:  "Issue new tokens to an account",
		Flags:  []cli.Flag{toFlag, quantityFlag, memoFlag},
		Action: issueAction,
	}
	retireCommand = cli.Command{
		Name:   "retire",
		Usage:  "Burn tokens from the issuer balance",
		Flags:  []cli.Flag{quantityFlag, memoFlag},
		Action: retireAction,
	}
	transferCommand = cli.Command{
		Name:   "transfer",
		Usage:  "Move tokens between two accounts",
		Flags:  []cli.Flag{fromFlag, toFlag, quantityFlag, memoFlag},
		Action: transferAction,
	}
	openCommand = cli.Command{
		Name:   "open",
		Usage:  "Open an empty balance for an account",
		Flags:  []cli.Flag{ownerFlag, symbolFlag, payerFlag},
		Action: openAction,
	}
	closeCommand = cli.Command{
		Name:   "close",
		Usage:  "Close an empty balance",
		Flags:  []cli.Flag{ownerFlag, symbolFlag},
		Action: closeAction,
	}
	claimCommand = cli.Command{
		Name:   "claim",
		Usage:  "Take over the storage of a balance funded by a third party",
		Flags:  []cli.Flag{ownerFlag, codeFlag},
		Action: claimAction,
	}
	recoverCommand = cli.Command{
		Name:   "recover",
		Usage:  "Let the issuer reclaim an unclaimed balance",
		Flags:  []cli.Flag{ownerFlag, codeFlag},
		Action: recoverAction,
	}
	loadUtxoCommand = cli.Command{
		Name:   "load-utxo",
		Usage:  "Lock native tokens into a bearer note bound to a public key",
		Flags:  []cli.Flag{fromFlag, pubkeyFlag, quantityFlag},
		Action: loadUtxoAction,
	}
	transferUtxoCommand = cli.Command{
		Name:   "transfer-utxo",
		Usage:  "Spend bearer notes toward accounts or new notes",
		Flags:  []cli.Flag{payerFlag, inputsFlag, outputsFlag, memoFlag},
		Action: transferUtxoAction,
	}
	stakeCommand = cli.Command{
		Name:   "stake",
		Usage:  "Stake native tokens",
		Flags:  []cli.Flag{ownerFlag, quantityFlag},
		Action: stakeAction,
	}
	unstakeCommand = cli.Command{
		Name:   "unstake",
		Usage:  "Withdraw staked tokens into a delayed refund",
		Flags:  []cli.Flag{ownerFlag, quantityFlag},
		Action: unstakeAction,
	}
	realizeCommand = cli.Command{
		Name:   "realize",
		Usage:  "Pay out the dividends accrued by a stake",
		Flags:  []cli.Flag{ownerFlag},
		Action: realizeAction,
	}
	refundCommand = cli.Command{
		Name:   "refund",
		Usage:  "Collect a refund once its delay has elapsed",
		Flags:  []cli.Flag{ownerFlag},
		Action: refundAction,
	}
	distributeCommand = cli.Command{
		Name:   "distribute",
		Usage:  "Distribute dividends to the stakers",
		Flags:  []cli.Flag{ownerFlag, quantityFlag},
		Action: distributeAction,
	}
	balanceCommand = cli.Command{
		Name:   "balance",
		Usage:  "Show the balance of an account",
		Flags:  []cli.Flag{ownerFlag, codeFlag},
		Action: balanceAction,
	}
	statsCommand = cli.Command{
		Name:   "stats",
		Usage:  "Show supply and issuer of a token",
		Flags:  []cli.Flag{codeFlag},
		Action: statsAction,
	}
	vestingCommand = cli.Command{
		Name:   "vesting",
		Usage:  "Show the vesting policy and budget of an account",
		Flags:  []cli.Flag{accountFlag},
		Action: vestingAction,
	}
	notesCommand = cli.Command{
		Name:   "notes",
		Usage:  "Show a bearer note by id or all notes bound to a public key",
		Flags:  []cli.Flag{noteIdFlag, pubkeyFlag},
		Action: notesAction,
	}
	stakeInfoCommand = cli.Command{
		Name:   "stake-info",
		Usage:  "Show the stake position of an account",
		Flags:  []cli.Flag{ownerFlag},
		Action: stakeInfoAction,
	}
	poolCommand = cli.Command{
		Name:   "pool",
		Usage:  "Show the dividend pool",
		Action: poolAction,
	}
	refundInfoCommand = cli.Command{
		Name:   "refund-info",
		Usage:  "Show the pending refund of an account",
		Flags:  []cli.Flag{ownerFlag},
		Action: refundInfoAction,
	}
	keygenCommand = cli.Command{
		Name:   "keygen",
		Usage:  "Generate a new key pair to receive bearer notes",
		Action: keygenAction,
	}
	signCommand = cli.Command{
		Name:   "sign",
		Usage:  "Sign the spending of a bearer note toward the given outputs",
		Flags:  []cli.Flag{prvkeyFlag, noteIdFlag, outputsFlag},
		Action: signAction,
	}
)

func createAction(ctx *cli.Context) error {
	maxSupply, err := parseAsset(ctx, maxSupplyFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Create(
		authContext(ctx), parseName(ctx, issuerFlagName), maxSupply,
	); err != nil {
		return err
	}
	return nil
}

func updateAction(ctx *cli.Context) error {
	maxSupply, err := parseAsset(ctx, maxSupplyFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Update(
		authContext(ctx), parseName(ctx, issuerFlagName), maxSupply,
	); err != nil {
		return err
	}
	return nil
}

func issueAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Issue(
		authContext(ctx), parseName(ctx, toFlagName), quantity, ctx.String(memoFlagName),
	); err != nil {
		return err
	}
	return nil
}

func retireAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Retire(authContext(ctx), quantity, ctx.String(memoFlagName)); err != nil {
		return err
	}
	return nil
}

func transferAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Transfer(
		authContext(ctx), parseName(ctx, fromFlagName), parseName(ctx, toFlagName),
		quantity, ctx.String(memoFlagName),
	); err != nil {
		return err
	}
	return nil
}

func openAction(ctx *cli.Context) error {
	symbol, err := parseSymbol(ctx)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Open(
		authContext(ctx), parseName(ctx, ownerFlagName), symbol, parseName(ctx, payerFlagName),
	); err != nil {
		return err
	}
	return nil
}

func closeAction(ctx *cli.Context) error {
	symbol, err := parseSymbol(ctx)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Close(authContext(ctx), parseName(ctx, ownerFlagName), symbol); err != nil {
		return err
	}
	return nil
}

func claimAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Claim(
		authContext(ctx), parseName(ctx, ownerFlagName), parseCode(ctx),
	); err != nil {
		return err
	}
	return nil
}

func recoverAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Recover(
		authContext(ctx), parseName(ctx, ownerFlagName), parseCode(ctx),
	); err != nil {
		return err
	}
	return nil
}

func loadUtxoAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	note, lerr := svc.LoadUtxo(
		authContext(ctx), parseName(ctx, fromFlagName), ctx.String(pubkeyFlagName), quantity,
	)
	if lerr != nil {
		return lerr
	}
	return printJSON(newNoteViews([]domain.UtxoNote{*note})[0])
}

func transferUtxoAction(ctx *cli.Context) error {
	inputs, err := parseInputs(ctx)
	if err != nil {
		return err
	}
	outputs, err := parseOutputs(ctx)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	notes, terr := svc.TransferUtxo(
		authContext(ctx), parseName(ctx, payerFlagName), inputs, outputs,
		ctx.String(memoFlagName),
	)
	if terr != nil {
		return terr
	}
	return printJSON(newNoteViews(notes))
}

func stakeAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Stake(authContext(ctx), parseName(ctx, ownerFlagName), quantity); err != nil {
		return err
	}
	return nil
}

func unstakeAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Unstake(authContext(ctx), parseName(ctx, ownerFlagName), quantity); err != nil {
		return err
	}
	return nil
}

func realizeAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.RealizeDividends(authContext(ctx), parseName(ctx, ownerFlagName)); err != nil {
		return err
	}
	return nil
}

func refundAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Refund(authContext(ctx), parseName(ctx, ownerFlagName)); err != nil {
		return err
	}
	return nil
}

func distributeAction(ctx *cli.Context) error {
	quantity, err := parseAsset(ctx, quantityFlagName)
	if err != nil {
		return err
	}
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Distribute(
		authContext(ctx), parseName(ctx, ownerFlagName), quantity,
	); err != nil {
		return err
	}
	return nil
}

func balanceAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	balance, berr := svc.GetBalance(ctx.Context, parseName(ctx, ownerFlagName), parseCode(ctx))
	if berr != nil {
		return berr
	}
	return printJSON(map[string]interface{}{
		"owner":   balance.Owner,
		"balance": balance.Balance,
		"claimed": balance.Claimed,
		"payer":   balance.Payer,
	})
}

func statsAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	stats, serr := svc.GetStats(ctx.Context, parseCode(ctx))
	if serr != nil {
		return serr
	}
	return printJSON(map[string]interface{}{
		"supply":     stats.Supply,
		"max_supply": stats.MaxSupply,
		"issuer":     stats.Issuer,
	})
}

func vestingAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	info, verr := svc.GetVesting(ctx.Context, parseName(ctx, accountFlagName))
	if verr != nil {
		return verr
	}
	return printJSON(map[string]interface{}{
		"account": info.Policy.Account,
		"type":    info.Policy.Type,
		"cap":     info.Policy.Cap,
		"epoch":   info.Policy.Epoch,
		"period":  info.Policy.Period,
		"issued":  info.Issued,
		"ceiling": info.Ceiling,
	})
}

func notesAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet(idFlagName) {
		note, nerr := svc.GetNote(ctx.Context, ctx.Uint64(idFlagName))
		if nerr != nil {
			return nerr
		}
		return printJSON(newNoteViews([]domain.UtxoNote{*note})[0])
	}

	notes, nerr := svc.GetNotesByPubKey(ctx.Context, ctx.String(pubkeyFlagName))
	if nerr != nil {
		return nerr
	}
	return printJSON(newNoteViews(notes))
}

func stakeInfoAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	position, serr := svc.GetStake(ctx.Context, parseName(ctx, ownerFlagName))
	if serr != nil {
		return serr
	}
	return printJSON(stakeView{
		Owner:                position.Owner.String(),
		Staked:               position.Staked,
		LastDividendFraction: position.LastDividendFraction.String(),
	})
}

func poolAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	pool, perr := svc.GetDividendPool(ctx.Context)
	if perr != nil {
		return perr
	}
	return printJSON(poolView{
		TotalStaked:             pool.TotalStaked,
		TotalDividends:          pool.TotalDividends,
		TotalUnclaimedDividends: pool.TotalUnclaimedDividends,
		Fraction:                pool.Fraction.String(),
	})
}

func refundInfoAction(ctx *cli.Context) error {
	svc, err := getService(ctx)
	if err != nil {
		return err
	}
	refund, rerr := svc.GetRefund(ctx.Context, parseName(ctx, ownerFlagName))
	if rerr != nil {
		return rerr
	}
	return printJSON(map[string]interface{}{
		"owner":        refund.Owner,
		"amount":       refund.Amount,
		"request_time": refund.RequestTime,
		"available_at": refund.AvailableAt,
	})
}

func keygenAction(_ *cli.Context) error {
	key, pubkey, err := signer.NewKey()
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"prvkey": hex.EncodeToString(key.Serialize()),
		"pubkey": pubkey,
	})
}

func signAction(ctx *cli.Context) error {
	key, err := signer.ParsePrivateKey(ctx.String(prvkeyFlagName))
	if err != nil {
		return err
	}
	outputs, err := parseOutputs(ctx)
	if err != nil {
		return err
	}
	input, err := signer.SignInput(key, ctx.Uint64(idFlagName), outputs)
	if err != nil {
		return err
	}
	return printJSON(utxoInput{
		Id:        input.Id,
		Signature: hex.EncodeToString(input.Signature),
	})
}
