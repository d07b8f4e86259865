package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxAmount is the largest magnitude an asset amount can hold.
	MaxAmount = int64(1)<<62 - 1
	// MaxPrecision bounds the number of decimals so that 10^precision fits an int64.
	MaxPrecision = 18

	maxSymbolCodeLen = 7
)

// SymbolCode is the ticker of an asset, 1 to 7 upper case letters.
type SymbolCode string

func (c SymbolCode) IsValid() bool {
	if len(c) == 0 || len(c) > maxSymbolCodeLen {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (c SymbolCode) String() string {
	return string(c)
}

// Symbol identifies a fungible asset by its precision and code.
type Symbol struct {
	Precision uint8
	Code      SymbolCode
}

func NewSymbol(precision uint8, code string) Symbol {
	return Symbol{Precision: precision, Code: SymbolCode(code)}
}

// ParseSymbol parses symbols in the "<precision>,<CODE>" form, eg. "4,PEOS".
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Symbol{}, fmt.Errorf("invalid symbol string: %s", s)
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("invalid symbol precision: %s", parts[0])
	}
	sym := NewSymbol(uint8(precision), parts[1])
	if !sym.IsValid() {
		return Symbol{}, fmt.Errorf("invalid symbol: %s", s)
	}
	return sym, nil
}

func (s Symbol) IsValid() bool {
	return s.Precision <= MaxPrecision && s.Code.IsValid()
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Asset is an amount of a given symbol, expressed in the smallest unit.
type Asset struct {
	Amount int64
	Symbol Symbol
}

func NewAsset(amount int64, symbol Symbol) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

// ParseAsset parses assets in the "<amount> <CODE>" form, the number of
// decimals of the amount gives the symbol precision, eg. "100.0000 PEOS".
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("invalid asset string: %s", s)
	}
	amountStr, code := parts[0], parts[1]

	negative := strings.HasPrefix(amountStr, "-")
	amountStr = strings.TrimPrefix(amountStr, "-")
	if strings.ContainsAny(amountStr, "+-") {
		return Asset{}, fmt.Errorf("invalid asset amount: %s", parts[0])
	}

	intPart, fracPart, hasDot := strings.Cut(amountStr, ".")
	if len(intPart) == 0 || (hasDot && len(fracPart) == 0) {
		return Asset{}, fmt.Errorf("invalid asset amount: %s", parts[0])
	}
	if len(fracPart) > MaxPrecision {
		return Asset{}, fmt.Errorf("asset precision too high: %s", parts[0])
	}

	amount, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("invalid asset amount: %s", parts[0])
	}
	if negative {
		amount = -amount
	}

	asset := NewAsset(amount, NewSymbol(uint8(len(fracPart)), code))
	if !asset.IsValid() {
		return Asset{}, fmt.Errorf("invalid asset: %s", s)
	}
	return asset, nil
}

func (a Asset) IsValid() bool {
	return a.Amount >= -MaxAmount && a.Amount <= MaxAmount && a.Symbol.IsValid()
}

func (a Asset) IsPositive() bool {
	return a.Amount > 0
}

// Add returns the sum of the two assets, failing on symbol mismatch or
// overflow.
func (a Asset) Add(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("attempt to add asset with different symbol")
	}
	sum := a.Amount + b.Amount
	if sum > MaxAmount || sum < -MaxAmount {
		return Asset{}, fmt.Errorf("asset amount overflow")
	}
	return NewAsset(sum, a.Symbol), nil
}

// Sub returns the difference of the two assets, failing on symbol mismatch
// or underflow.
func (a Asset) Sub(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("attempt to subtract asset with different symbol")
	}
	diff := a.Amount - b.Amount
	if diff > MaxAmount || diff < -MaxAmount {
		return Asset{}, fmt.Errorf("asset amount underflow")
	}
	return NewAsset(diff, a.Symbol), nil
}

func (a Asset) String() string {
	sign := ""
	amount := a.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if a.Symbol.Precision == 0 {
		return fmt.Sprintf("%s%d %s", sign, amount, a.Symbol.Code)
	}

	unit := int64(1)
	for range a.Symbol.Precision {
		unit *= 10
	}
	return fmt.Sprintf(
		"%s%d.%0*d %s", sign, amount/unit, int(a.Symbol.Precision), amount%unit, a.Symbol.Code,
	)
}

func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Asset) UnmarshalText(text []byte) error {
	asset, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = asset
	return nil
}
