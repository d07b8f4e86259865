package domain

// CurrencyStats tracks supply and issuer of a symbol.
type CurrencyStats struct {
	Supply    Asset
	MaxSupply Asset
	Issuer    Name
}

func NewCurrencyStats(issuer Name, maxSupply Asset) CurrencyStats {
	return CurrencyStats{
		Supply:    NewAsset(0, maxSupply.Symbol),
		MaxSupply: maxSupply,
		Issuer:    issuer,
	}
}

func (s CurrencyStats) Symbol() Symbol {
	return s.Supply.Symbol
}

// Available returns how much can still be issued before hitting the max supply.
func (s CurrencyStats) Available() int64 {
	return s.MaxSupply.Amount - s.Supply.Amount
}
