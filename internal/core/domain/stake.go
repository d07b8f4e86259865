package domain

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// DividendScale is the fixed-point scale of the dividend accumulator.
const DividendScale = 1_000_000_000_000_000_000

const dividendDecimals = 18

var (
	dividendScale = uint256.NewInt(DividendScale)

	// InitialDividendFraction is the accumulator value of a fresh pool, 1.0.
	InitialDividendFraction = NewDividendFraction(dividendScale)
)

// DividendFraction is the cumulative amount of dividends distributed per
// staked unit, stored as a 256 bit fixed-point number scaled by 10^18.
type DividendFraction [4]uint64

func NewDividendFraction(v *uint256.Int) DividendFraction {
	return DividendFraction(*v)
}

// ParseDividendFraction parses the integer representation of a fraction, as
// returned by Raw.
func ParseDividendFraction(s string) (DividendFraction, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return DividendFraction{}, fmt.Errorf("invalid dividend fraction %q: %s", s, err)
	}
	return NewDividendFraction(v), nil
}

func (f DividendFraction) Int() *uint256.Int {
	v := uint256.Int(f)
	return &v
}

// Raw is the decimal representation of the scaled integer.
func (f DividendFraction) Raw() string {
	return f.Int().Dec()
}

func (f DividendFraction) Equal(other DividendFraction) bool {
	return f == other
}

// Add returns the accumulator increased by quantity/totalStaked, rounded
// down.
func (f DividendFraction) Add(quantity, totalStaked int64) (DividendFraction, error) {
	if quantity < 0 || totalStaked <= 0 {
		return DividendFraction{}, fmt.Errorf(
			"invalid distribution of %d over %d staked units", quantity, totalStaked,
		)
	}
	delta := new(uint256.Int).Mul(uint256.NewInt(uint64(quantity)), dividendScale)
	delta.Div(delta, uint256.NewInt(uint64(totalStaked)))

	sum, overflow := new(uint256.Int).AddOverflow(f.Int(), delta)
	if overflow {
		return DividendFraction{}, fmt.Errorf("dividend fraction overflow")
	}
	return NewDividendFraction(sum), nil
}

// Owed is the amount earned by staked units since the last snapshot, rounded
// down to the smallest unit.
func (f DividendFraction) Owed(last DividendFraction, staked int64) (int64, error) {
	if staked <= 0 {
		return 0, nil
	}
	if f.Int().Lt(last.Int()) {
		return 0, fmt.Errorf("dividend snapshot %s is ahead of accumulator %s", last, f)
	}
	owed := new(uint256.Int).Sub(f.Int(), last.Int())
	owed.Mul(owed, uint256.NewInt(uint64(staked)))
	owed.Div(owed, dividendScale)
	if !owed.IsUint64() || owed.Uint64() > uint64(MaxAmount) {
		return 0, fmt.Errorf("owed dividends overflow")
	}
	return int64(owed.Uint64()), nil
}

// String formats the fraction with all its 18 decimals, eg. 1.5 is
// "1.500000000000000000".
func (f DividendFraction) String() string {
	quo, rem := new(uint256.Int).DivMod(f.Int(), dividendScale, new(uint256.Int))
	frac := rem.Dec()
	return quo.Dec() + "." + strings.Repeat("0", dividendDecimals-len(frac)) + frac
}

// StakePosition is the amount staked by an owner and the accumulator value at
// its last dividend realization.
type StakePosition struct {
	Owner                Name
	Staked               Asset
	LastDividendFraction DividendFraction
}

func (p StakePosition) Key() string {
	return OwnerKey(p.Owner, p.Staked.Symbol.Code)
}

// DividendPool is the global staking state of a symbol.
type DividendPool struct {
	TotalStaked             Asset
	TotalDividends          Asset
	TotalUnclaimedDividends Asset
	Fraction                DividendFraction
}

func NewDividendPool(symbol Symbol) DividendPool {
	return DividendPool{
		TotalStaked:             NewAsset(0, symbol),
		TotalDividends:          NewAsset(0, symbol),
		TotalUnclaimedDividends: NewAsset(0, symbol),
		Fraction:                InitialDividendFraction,
	}
}

func (p DividendPool) Symbol() Symbol {
	return p.TotalStaked.Symbol
}

// RefundRequest is the unstaked amount waiting for the refund delay to
// elapse.
type RefundRequest struct {
	Owner       Name
	RequestTime int64
	Amount      Asset
}

func (r RefundRequest) AvailableAt(delay int64) int64 {
	return r.RequestTime + delay
}
