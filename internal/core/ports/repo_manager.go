package ports

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
)

type RepoManager interface {
	Balances() domain.BalanceRepository
	Stats() domain.StatsRepository
	Vesting() domain.VestingRepository
	Utxos() domain.UtxoRepository
	Stakes() domain.StakeRepository
	Dividends() domain.DividendRepository
	Refunds() domain.RefundRepository
	// RunInTx runs fn in a single store transaction: either every mutation made
	// through the ctx passed to fn is committed or none is.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Close()
}
