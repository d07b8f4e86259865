package queries

type Balance struct {
	Owner           string
	Code            string
	SymbolPrecision int64
	Amount          int64
	Claimed         bool
	Payer           string
}

type CurrencyStat struct {
	Code            string
	SymbolPrecision int64
	Supply          int64
	MaxSupply       int64
	Issuer          string
}

type Vesting struct {
	Account         string
	Code            string
	SymbolPrecision int64
	Issued          int64
}

type Utxo struct {
	ID              int64
	Pubkey          string
	PubkeyHash      string
	Code            string
	SymbolPrecision int64
	Amount          int64
	Payer           string
}

type Stake struct {
	Owner                string
	Code                 string
	SymbolPrecision      int64
	Staked               int64
	LastDividendFraction string
}

type DividendPool struct {
	Code                    string
	SymbolPrecision         int64
	TotalStaked             int64
	TotalDividends          int64
	TotalUnclaimedDividends int64
	DividendFraction        string
}

type RefundRequest struct {
	Owner           string
	RequestTime     int64
	Code            string
	SymbolPrecision int64
	Amount          int64
}
