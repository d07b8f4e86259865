package domain

import "context"

type StatsRepository interface {
	Get(ctx context.Context, code SymbolCode) (*CurrencyStats, error)
	Add(ctx context.Context, stats CurrencyStats) error
	Update(ctx context.Context, stats CurrencyStats) error
}
