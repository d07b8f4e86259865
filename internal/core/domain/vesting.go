package domain

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	FlatCap   VestingPolicyType = "flat"
	LinearCap VestingPolicyType = "linear"
)

type VestingPolicyType string

// VestingRecord is the cumulative issuance credited to a privileged account.
type VestingRecord struct {
	Account Name
	Issued  Asset
}

// VestingPolicy bounds the cumulative issuance to a privileged account.
// A flat policy allows up to Cap at any time, a linear one releases Cap for
// every Period elapsed since Epoch, proportionally to the seconds elapsed.
type VestingPolicy struct {
	Account Name              `mapstructure:"account"`
	Type    VestingPolicyType `mapstructure:"type"`
	Cap     int64             `mapstructure:"cap"`
	Epoch   int64             `mapstructure:"epoch"`
	Period  int64             `mapstructure:"period"`
}

func NewFlatVestingPolicy(account Name, cap int64) VestingPolicy {
	return VestingPolicy{Account: account, Type: FlatCap, Cap: cap}
}

func NewLinearVestingPolicy(account Name, cap, epoch, period int64) VestingPolicy {
	return VestingPolicy{
		Account: account, Type: LinearCap, Cap: cap, Epoch: epoch, Period: period,
	}
}

func (p VestingPolicy) Validate() error {
	if !p.Account.IsValid() {
		return fmt.Errorf("invalid vesting account %q", p.Account)
	}
	if p.Cap < 0 || p.Cap > MaxAmount {
		return fmt.Errorf("invalid vesting cap %d for %s", p.Cap, p.Account)
	}
	switch p.Type {
	case FlatCap:
	case LinearCap:
		if p.Period <= 0 {
			return fmt.Errorf("vesting period of %s must be positive", p.Account)
		}
	default:
		return fmt.Errorf("unknown vesting policy type %q for %s", p.Type, p.Account)
	}
	return nil
}

// Ceiling returns the maximum cumulative issuance allowed at the given unix
// time.
func (p VestingPolicy) Ceiling(now int64) int64 {
	if p.Type == FlatCap {
		return p.Cap
	}

	if now <= p.Epoch {
		return 0
	}
	elapsed := now - p.Epoch

	// cap * elapsed can overflow 64 bits.
	ceiling := new(uint256.Int).Mul(uint256.NewInt(uint64(p.Cap)), uint256.NewInt(uint64(elapsed)))
	ceiling.Div(ceiling, uint256.NewInt(uint64(p.Period)))
	if !ceiling.IsUint64() || ceiling.Uint64() > uint64(MaxAmount) {
		return MaxAmount
	}
	return int64(ceiling.Uint64())
}
