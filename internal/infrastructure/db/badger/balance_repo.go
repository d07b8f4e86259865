package badgerdb

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type balanceRepository struct {
	store *badgerhold.Store
}

func (r *balanceRepository) Get(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) (*domain.Balance, error) {
	var balance domain.Balance
	found, err := get(ctx, r.store, domain.OwnerKey(owner, code), &balance)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", owner, err)
	}
	if !found {
		return nil, nil
	}
	return &balance, nil
}

func (r *balanceRepository) Add(ctx context.Context, balance domain.Balance) error {
	if err := insert(ctx, r.store, balance.Key(), balance); err != nil {
		return fmt.Errorf("failed to add balance %s: %w", balance.Key(), err)
	}
	return nil
}

func (r *balanceRepository) Update(ctx context.Context, balance domain.Balance) error {
	if err := update(ctx, r.store, balance.Key(), balance); err != nil {
		return fmt.Errorf("failed to update balance %s: %w", balance.Key(), err)
	}
	return nil
}

func (r *balanceRepository) Delete(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) error {
	key := domain.OwnerKey(owner, code)
	if err := remove(ctx, r.store, key, domain.Balance{}); err != nil {
		return fmt.Errorf("failed to delete balance %s: %w", key, err)
	}
	return nil
}
