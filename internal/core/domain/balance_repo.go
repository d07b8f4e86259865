package domain

import "context"

type BalanceRepository interface {
	Get(ctx context.Context, owner Name, code SymbolCode) (*Balance, error)
	Add(ctx context.Context, balance Balance) error
	Update(ctx context.Context, balance Balance) error
	Delete(ctx context.Context, owner Name, code SymbolCode) error
}
