package application

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
)

type Service interface {
	// Supply
	Create(ctx context.Context, issuer domain.Name, maxSupply domain.Asset) errors.Error
	Update(ctx context.Context, issuer domain.Name, maxSupply domain.Asset) errors.Error
	Issue(ctx context.Context, to domain.Name, quantity domain.Asset, memo string) errors.Error
	Retire(ctx context.Context, quantity domain.Asset, memo string) errors.Error

	// Balances
	Transfer(
		ctx context.Context, from, to domain.Name, quantity domain.Asset, memo string,
	) errors.Error
	Open(ctx context.Context, owner domain.Name, symbol domain.Symbol, payer domain.Name) errors.Error
	Close(ctx context.Context, owner domain.Name, symbol domain.Symbol) errors.Error
	Claim(ctx context.Context, owner domain.Name, code domain.SymbolCode) errors.Error
	Recover(ctx context.Context, owner domain.Name, code domain.SymbolCode) errors.Error

	// Bearer notes
	LoadUtxo(
		ctx context.Context, from domain.Name, pubkey string, quantity domain.Asset,
	) (*domain.UtxoNote, errors.Error)
	TransferUtxo(
		ctx context.Context, payer domain.Name,
		inputs []domain.UtxoInput, outputs []domain.UtxoOutput, memo string,
	) ([]domain.UtxoNote, errors.Error)

	// Staking
	Stake(ctx context.Context, owner domain.Name, quantity domain.Asset) errors.Error
	Unstake(ctx context.Context, owner domain.Name, quantity domain.Asset) errors.Error
	RealizeDividends(ctx context.Context, owner domain.Name) errors.Error
	Refund(ctx context.Context, owner domain.Name) errors.Error
	Distribute(ctx context.Context, owner domain.Name, quantity domain.Asset) errors.Error

	// Queries
	GetBalance(
		ctx context.Context, owner domain.Name, code domain.SymbolCode,
	) (*domain.Balance, errors.Error)
	GetStats(ctx context.Context, code domain.SymbolCode) (*domain.CurrencyStats, errors.Error)
	GetVesting(ctx context.Context, account domain.Name) (*VestingInfo, errors.Error)
	GetNote(ctx context.Context, id uint64) (*domain.UtxoNote, errors.Error)
	GetNotesByPubKey(ctx context.Context, pubkey string) ([]domain.UtxoNote, errors.Error)
	GetStake(ctx context.Context, owner domain.Name) (*domain.StakePosition, errors.Error)
	GetDividendPool(ctx context.Context) (*domain.DividendPool, errors.Error)
	GetRefund(ctx context.Context, owner domain.Name) (*RefundInfo, errors.Error)

	Stop()
}

type Config struct {
	// ContractAccount holds the value of bearer notes, stakes and dividends.
	ContractAccount domain.Name
	// NativeSymbol is the only asset that can be loaded into notes, staked or
	// distributed.
	NativeSymbol domain.Symbol
	// RefundDelay is the number of seconds between an unstake and its refund.
	RefundDelay     int64
	VestingPolicies []domain.VestingPolicy
}

func (c Config) Validate() error {
	if !c.ContractAccount.IsValid() {
		return fmt.Errorf("invalid contract account %q", c.ContractAccount)
	}
	if !c.NativeSymbol.IsValid() {
		return fmt.Errorf("invalid native symbol %s", c.NativeSymbol)
	}
	if c.RefundDelay < 0 {
		return fmt.Errorf("refund delay must not be negative")
	}
	seen := make(map[domain.Name]struct{})
	for _, policy := range c.VestingPolicies {
		if err := policy.Validate(); err != nil {
			return err
		}
		if _, ok := seen[policy.Account]; ok {
			return fmt.Errorf("duplicated vesting policy for %s", policy.Account)
		}
		seen[policy.Account] = struct{}{}
	}
	return nil
}

type VestingInfo struct {
	Policy  domain.VestingPolicy
	Issued  int64
	Ceiling int64
}

type RefundInfo struct {
	domain.RefundRequest
	AvailableAt int64
}
