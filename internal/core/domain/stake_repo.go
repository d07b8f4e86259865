package domain

import "context"

type StakeRepository interface {
	Get(ctx context.Context, owner Name, code SymbolCode) (*StakePosition, error)
	Upsert(ctx context.Context, position StakePosition) error
	Delete(ctx context.Context, owner Name, code SymbolCode) error
}

type DividendRepository interface {
	Get(ctx context.Context, code SymbolCode) (*DividendPool, error)
	Upsert(ctx context.Context, pool DividendPool) error
}

type RefundRepository interface {
	Get(ctx context.Context, owner Name) (*RefundRequest, error)
	Upsert(ctx context.Context, request RefundRequest) error
	Delete(ctx context.Context, owner Name) error
}
