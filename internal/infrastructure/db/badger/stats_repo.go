package badgerdb

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type statsRepository struct {
	store *badgerhold.Store
}

func (r *statsRepository) Get(
	ctx context.Context, code domain.SymbolCode,
) (*domain.CurrencyStats, error) {
	var stats domain.CurrencyStats
	found, err := get(ctx, r.store, code.String(), &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats of %s: %w", code, err)
	}
	if !found {
		return nil, nil
	}
	return &stats, nil
}

func (r *statsRepository) Add(ctx context.Context, stats domain.CurrencyStats) error {
	code := stats.Symbol().Code
	if err := insert(ctx, r.store, code.String(), stats); err != nil {
		return fmt.Errorf("failed to add stats of %s: %w", code, err)
	}
	return nil
}

func (r *statsRepository) Update(ctx context.Context, stats domain.CurrencyStats) error {
	code := stats.Symbol().Code
	if err := update(ctx, r.store, code.String(), stats); err != nil {
		return fmt.Errorf("failed to update stats of %s: %w", code, err)
	}
	return nil
}
