package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/db/sqlite/queries"
)

type statsRepository struct {
	db *sql.DB
}

func (r *statsRepository) Get(
	ctx context.Context, code domain.SymbolCode,
) (*domain.CurrencyStats, error) {
	row, err := querier(ctx, r.db).SelectCurrencyStats(ctx, code.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats of %s: %w", code, err)
	}

	return &domain.CurrencyStats{
		Supply:    toAsset(row.Supply, row.SymbolPrecision, row.Code),
		MaxSupply: toAsset(row.MaxSupply, row.SymbolPrecision, row.Code),
		Issuer:    domain.Name(row.Issuer),
	}, nil
}

func (r *statsRepository) Add(ctx context.Context, stats domain.CurrencyStats) error {
	if err := querier(ctx, r.db).InsertCurrencyStats(ctx, toStatsRow(stats)); err != nil {
		return fmt.Errorf("failed to add stats of %s: %w", stats.Symbol().Code, err)
	}
	return nil
}

func (r *statsRepository) Update(ctx context.Context, stats domain.CurrencyStats) error {
	count, err := querier(ctx, r.db).UpdateCurrencyStats(ctx, toStatsRow(stats))
	if err != nil {
		return fmt.Errorf("failed to update stats of %s: %w", stats.Symbol().Code, err)
	}
	if count == 0 {
		return fmt.Errorf("failed to update stats of %s: not found", stats.Symbol().Code)
	}
	return nil
}

func toStatsRow(stats domain.CurrencyStats) queries.CurrencyStat {
	return queries.CurrencyStat{
		Code:            stats.Symbol().Code.String(),
		SymbolPrecision: int64(stats.Symbol().Precision),
		Supply:          stats.Supply.Amount,
		MaxSupply:       stats.MaxSupply.Amount,
		Issuer:          stats.Issuer.String(),
	}
}
